package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"roomshift/internal/errors"
	"roomshift/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse represents a register or login response.
type AuthResponse struct {
	Msg   string       `json:"msg"`
	User  UserResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "invalid request body",
			Code: "INVALID_REQUEST",
		})
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "email and password are required",
			Code: "VALIDATION_ERROR",
		})
	}

	result, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Phone)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Msg:   "User registered successfully",
		User:  UserResponse{ID: result.User.ID, Email: result.User.Email},
		Token: result.AccessToken,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "invalid request body",
			Code: "INVALID_REQUEST",
		})
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "email and password are required",
			Code: "VALIDATION_ERROR",
		})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Msg:   "Login successful!",
		User:  UserResponse{ID: result.User.ID, Email: result.User.Email},
		Token: result.AccessToken,
	})
}

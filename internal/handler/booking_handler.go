package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"roomshift/internal/auth"
	"roomshift/internal/errors"
	"roomshift/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookMoveRequest represents a move booking request. Customer fields are
// stored as sent.
type BookMoveRequest struct {
	UserID             string `json:"userId"`
	UserName           string `json:"userName"`
	UserPhone          string `json:"userPhone"`
	UserEmail          string `json:"userEmail"`
	HouseSize          string `json:"houseSize"`
	MoveDate           string `json:"moveDate"`
	Price              string `json:"price"`
	PickupAddress      string `json:"pickupAddress"`
	DestinationAddress string `json:"destinationAddress"`
}

// BookMoveResponse represents a booking confirmation.
type BookMoveResponse struct {
	Msg       string `json:"msg"`
	BookingID string `json:"bookingId"`
}

// BookMove godoc
// @Summary Book a move
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BookMoveRequest true "Booking data"
// @Success 201 {object} BookMoveResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /book-move [post]
func (h *BookingHandler) BookMove(c echo.Context) error {
	var req BookMoveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Msg:  "invalid request body",
			Code: "INVALID_REQUEST",
		})
	}

	// An authenticated caller always books for themselves.
	if userID, ok := auth.UserID(c); ok {
		req.UserID = userID
	}

	booking, err := h.bookingService.Create(c.Request().Context(), service.CreateBookingInput{
		UserID:             req.UserID,
		UserName:           req.UserName,
		UserPhone:          req.UserPhone,
		UserEmail:          req.UserEmail,
		HouseSize:          req.HouseSize,
		MoveDate:           req.MoveDate,
		Price:              req.Price,
		PickupAddress:      req.PickupAddress,
		DestinationAddress: req.DestinationAddress,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, BookMoveResponse{
		Msg:       "Booking confirmed successfully!",
		BookingID: booking.ID,
	})
}

// MyBookings godoc
// @Summary List a user's bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} model.Booking
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /my-bookings/{userId} [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID := c.Param("userId")

	if tokenUserID, ok := auth.UserID(c); ok && tokenUserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Msg:  "cannot read another user's bookings",
			Code: "FORBIDDEN",
		})
	}

	bookings, err := h.bookingService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Could not fetch history",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(http.StatusOK, bookings)
}

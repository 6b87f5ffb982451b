package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"roomshift/internal/auth"
	"roomshift/internal/config"
	"roomshift/internal/handler"
	appmiddleware "roomshift/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	paymentHandler *handler.PaymentHandler,
) {
	e.Pre(appmiddleware.CORS(cfg.AllowedOrigins))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "API working"})
	})
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// eSewa redirects the browser here, so no bearer token is ever present.
	api.GET("/payment/esewa/success", paymentHandler.EsewaSuccess)
	api.GET("/payment/esewa/failure", paymentHandler.EsewaFailure)

	secured := api.Group("")
	if cfg.AuthRequired {
		secured.Use(jwtService.Middleware())
	}

	// Booking routes
	secured.POST("/book-move", bookingHandler.BookMove)
	secured.GET("/my-bookings/:userId", bookingHandler.MyBookings)

	// Payment routes
	secured.POST("/payment/esewa/initiate", paymentHandler.InitiateEsewa)
	secured.POST("/payment/khalti/initiate", paymentHandler.InitiateKhalti)
	secured.POST("/payment/khalti/verify", paymentHandler.VerifyKhalti)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

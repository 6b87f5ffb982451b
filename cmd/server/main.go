package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"roomshift/docs"
	"roomshift/internal/auth"
	"roomshift/internal/cache"
	"roomshift/internal/config"
	"roomshift/internal/gateway"
	"roomshift/internal/handler"
	"roomshift/internal/repository"
	"roomshift/internal/router"
	"roomshift/internal/service"
)

// @title RoomShift API
// @version 1.0
// @description Moving-service booking API with eSewa and Khalti payments.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	log.Printf("storage backend: %s", cfg.DBDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize gateways
	httpClient := &http.Client{Timeout: cfg.GatewayTimeout}
	esewa := gateway.NewEsewa(cfg.Esewa, httpClient)
	khalti := gateway.NewKhalti(cfg.Khalti, httpClient)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(store.Users, jwtService)
	bookingService := service.NewBookingService(store.Bookings, cacheClient)
	paymentService := service.NewPaymentService(service.PaymentDeps{
		Bookings:        store.Bookings,
		Transactions:    store.Transactions,
		Logs:            store.Logs,
		Cache:           cacheClient,
		Esewa:           esewa,
		Khalti:          khalti,
		CallbackBaseURL: cfg.PublicBaseURL,
	})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		bookingHandler,
		paymentHandler,
	)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	paymentService.Close()
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("database close: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("cache close: %v", err)
	}
}


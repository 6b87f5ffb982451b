package main

import (
	"context"
	"errors"
	"log"

	"roomshift/internal/auth"
	"roomshift/internal/config"
	apperrors "roomshift/internal/errors"
	"roomshift/internal/repository"
	"roomshift/internal/service"
)

// Demo account the static site's login page is tested with.
const (
	demoEmail    = "test@gmail.com"
	demoPassword = "1234"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Connect to database and ensure the schema is up to date
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.DBDriver, err)
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Printf("Failed to close storage: %v", err)
		}
	}()
	log.Printf("Connected to %s storage", cfg.DBDriver)

	authService := service.NewAuthService(store.Users, auth.NewJWTService(cfg.JWTSecret))

	created, err := seedDemoUser(ctx, authService)
	if err != nil {
		log.Printf("Failed to seed demo user: %v", err)
		return
	}
	if created {
		log.Printf("Seed completed: created %s", demoEmail)
	} else {
		log.Printf("Seed completed: %s already exists", demoEmail)
	}
}

// seedDemoUser registers the demo account. An existing account is left as is.
func seedDemoUser(ctx context.Context, authService service.AuthService) (bool, error) {
	_, err := authService.Register(ctx, demoEmail, demoPassword, "")
	if errors.Is(err, apperrors.ErrDuplicateUser) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

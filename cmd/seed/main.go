package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-mentorship-tracker/config"
	"github.com/oksasatya/go-mentorship-tracker/internal/application"
	"github.com/oksasatya/go-mentorship-tracker/internal/container"
	"github.com/oksasatya/go-mentorship-tracker/internal/domain/entity"
	pginfra "github.com/oksasatya/go-mentorship-tracker/internal/infrastructure/postgres"
	"github.com/oksasatya/go-mentorship-tracker/internal/router"
	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/helpers"
)

const seedPassword = "Password123"

// seeds a demo mentor with one assigned mentee through the service layer
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	if cfg.StoreDriver != config.StoreMemory {
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		container.SetPGPool(pool)
	}
	svc := router.BuildService()

	mentor := ensure(ctx, svc, application.SignupInput{
		Name:      "Alice Mentor",
		Email:     "alice@example.com",
		Password:  seedPassword,
		Role:      "mentor",
		Bio:       "Backend engineer, happy to help with Go and databases.",
		Expertise: []string{"Go", "PostgreSQL", "Distributed Systems"},
	})
	mentee := ensure(ctx, svc, application.SignupInput{
		Name:     "Bob Mentee",
		Email:    "bob@example.com",
		Password: seedPassword,
		Role:     "mentee",
	})

	if _, err := svc.AssignMentee(ctx, mentor.ID, mentee.Email); err != nil && !errors.Is(err, apperr.ErrAlreadyAssigned) {
		logger.Fatalf("failed to assign mentee: %v", err)
	}
	fmt.Printf("seeded mentor=%s (%s) mentee=%s (%s) password=%s\n", mentor.ID, mentor.Email, mentee.ID, mentee.Email, seedPassword)
}

// ensure signs the user up, or logs in when the email is already registered.
func ensure(ctx context.Context, svc *application.Service, in application.SignupInput) *entity.User {
	res, err := svc.Signup(ctx, in)
	if errors.Is(err, apperr.ErrEmailTaken) {
		res, err = svc.Login(ctx, in.Email, in.Password)
	}
	if err != nil {
		container.GetLogger().Fatalf("failed to seed %s: %v", in.Email, err)
	}
	return res.Profile.User
}

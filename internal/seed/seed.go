// Package seed creates development data at startup.
package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	appModels "github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/auth"
)

// FacultyAccount describes the demo account to create.
type FacultyAccount struct {
	Name     string
	Email    string
	Password string
}

// UserStore is what seeding needs from the user repository.
type UserStore interface {
	Create(ctx context.Context, user *appModels.User) error
	GetByEmail(ctx context.Context, email string) (*appModels.User, error)
}

// CreateDefaultData creates the demo faculty account if configured and missing.
// An empty email disables seeding.
func CreateDefaultData(ctx context.Context, users UserStore, account FacultyAccount, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(account.Email))
	if email == "" {
		lgr.Debug().Msg("No seed faculty configured, skipping default data")
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Seed faculty already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	if len(account.Password) < 6 {
		return apperrors.NewValidationError("seed.password", "seed password must be at least 6 characters")
	}
	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(account.Name)
	if name == "" {
		name = "Demo Faculty"
	}
	user := &appModels.User{Name: name, Email: email, Password: hash}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", email).Int64("userID", user.ID).Msg("Seed faculty created")
	return nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/db"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/dberrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

const usersEmailConstraint = "users_email_key"

// UserRepository handles database operations for faculty accounts
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UserRepository) selectUsers() squirrel.SelectBuilder {
	return r.sb.Select("id", "name", "email", "password", "created_at", "updated_at").From("users")
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user")
		return nil, err
	}
	return &u, nil
}

// Create inserts user and fills its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password").
		Values(user.Name, user.Email, user.Password).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return err
	}

	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return err
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.selectUsers().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}
	return scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.selectUsers().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}
	return scanUser(r.db.Pool.QueryRow(ctx, sql, args...))
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/db"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type UserRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewUserRepository(queries *db.Queries, logger zerolog.Logger) *UserRepository {
	return &UserRepository{queries: queries, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	now := time.Now().UTC()
	err = r.queries.InsertUser(ctx, db.InsertUserParams{
		ID:           id,
		Role:         user.Role,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if isUniqueViolation(err) {
		return nil, domain.ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	created := *user
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now
	return &created, nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUser(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row, err := r.queries.GetUserByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}
	return toDomainUser(row), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = *toDomainUser(row)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.queries.UpdateUser(ctx, db.UpdateUserParams{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		UpdatedAt:    time.Now().UTC(),
		ID:           user.ID,
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainUser(u db.User) *domain.User {
	return &domain.User{
		ID:           u.ID,
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

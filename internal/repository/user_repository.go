package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-checkout/internal/db"
	"github.com/nikolayk812/shop-checkout/internal/domain"
	"github.com/nikolayk812/shop-checkout/internal/port"
)

const uniqueViolation = "23505"

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{q: db.New(pool)}
}

func (r *userRepository) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, fmt.Errorf("userID is empty")
	}

	row, err := r.q.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", userID, domain.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUser: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user with email[%s]: %w", email, domain.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return mapUserToDomain(row), nil
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		return domain.User{}, fmt.Errorf("userID is empty")
	}
	if user.Email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", user.Email, domain.ErrAlreadyExists)
		}
		return domain.User{}, fmt.Errorf("q.CreateUser: %w", err)
	}

	return mapUserToDomain(row), nil
}

func mapUserToDomain(row db.User) domain.User {
	return domain.User{
		ID:    row.ID,
		Email: row.Email,
		Name:  row.Name,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

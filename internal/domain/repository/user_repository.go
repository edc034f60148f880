package repository

import (
	"context"

	"github.com/bhbank/credit-backend/internal/domain/entity"
)

// UserRepository defines the interface for identity store operations.
// Create surfaces unique-constraint violations as ErrDuplicateEmail/ErrDuplicateCIN.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByCIN(ctx context.Context, cin string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

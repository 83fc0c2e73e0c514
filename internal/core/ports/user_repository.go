package ports

import (
	"context"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account uses email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create returns domain.ErrDuplicateEmail or domain.ErrUserExists when a
	// unique constraint on email or id is violated.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

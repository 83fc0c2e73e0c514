package ports

import (
	"context"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// SignUpInput carries a candidate account. Password is the raw secret and
// is only ever handed to the PasswordHasher.
type SignUpInput struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

// PasswordHasher is a one-way, salted hash with constant-time verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints a signed identity token.
type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

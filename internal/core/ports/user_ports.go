package ports

import (
	"context"

	"github.com/quickpoll/api/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// TokenPayload is the decoded content of a bearer token.
type TokenPayload struct {
	UserID string
	Email  string
}

type CredentialService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, email string) (*domain.User, error)
	DecodeToken(token string) (*TokenPayload, error)
}

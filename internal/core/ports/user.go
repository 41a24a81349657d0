package ports

import (
	"context"

	"taskplanner/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	ResolveUser(ctx context.Context, email string) (domain.User, error)
}

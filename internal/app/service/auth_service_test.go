package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"taskplanner/internal/app/service"
	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/reminder"
)

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func newAuthService(repo *userRepositoryMock) *service.AuthService {
	return service.NewAuthService(repo, reminder.NewFakeClock(time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC))).
		WithCost(bcrypt.MinCost)
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := new(userRepositoryMock)
	repo.On("ExistsByUsername", mock.Anything, "ada").Return(false, nil)
	repo.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(domain.User{}, domain.ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ada@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")) == nil
	})).Return(domain.User{ID: 1, Username: "ada", Email: "ada@example.com"}, nil).Once()

	user, err := newAuthService(repo).Register(context.Background(), domain.RegisterInput{
		Username: " ada ",
		Email:    " Ada@Example.com",
		Password: "s3cret!",
	})

	require.NoError(t, err)
	require.Equal(t, uint64(1), user.ID)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_Conflicts(t *testing.T) {
	repo := new(userRepositoryMock)
	repo.On("ExistsByUsername", mock.Anything, "ada").Return(true, nil).Once()
	_, err := newAuthService(repo).Register(context.Background(), domain.RegisterInput{Username: "ada", Email: "a@example.com", Password: "pw1234"})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	repo = new(userRepositoryMock)
	repo.On("ExistsByUsername", mock.Anything, "bob").Return(false, nil)
	repo.On("GetUserByEmail", mock.Anything, "a@example.com").Return(domain.User{ID: 2}, nil)
	_, err = newAuthService(repo).Register(context.Background(), domain.RegisterInput{Username: "bob", Email: "a@example.com", Password: "pw1234"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(userRepositoryMock)
	repo.On("GetUserByEmail", mock.Anything, "ada@example.com").Return(domain.User{ID: 1, Email: "ada@example.com", PasswordHash: string(hash)}, nil)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(domain.User{}, domain.ErrUserNotFound)
	repo.On("GetUserByEmail", mock.Anything, "broken@example.com").Return(domain.User{}, errors.New("db is down"))
	svc := newAuthService(repo)

	user, err := svc.Login(context.Background(), "ADA@example.com", "s3cret!")
	require.NoError(t, err)
	require.Equal(t, uint64(1), user.ID)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@example.com", "s3cret!")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "broken@example.com", "s3cret!")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

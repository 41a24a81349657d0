package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskplanner/internal/core/domain"
	"taskplanner/internal/core/ports"
	"taskplanner/internal/core/reminder"
)

type AuthService struct {
	userRepository ports.UserRepository
	clock          reminder.Clock
	cost           int
}

func NewAuthService(userRepository ports.UserRepository, clock reminder.Clock) *AuthService {
	if clock == nil {
		clock = reminder.SystemClock{}
	}
	return &AuthService{
		userRepository: userRepository,
		clock:          clock,
		cost:           bcrypt.DefaultCost,
	}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := NormalizeEmail(input.Email)

	taken, err := s.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return domain.User{}, err
	}
	if taken {
		return domain.User{}, domain.ErrUsernameTaken
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepository.CreateUser(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		return domain.User{}, err
	}

	zap.L().Info("user registered", zap.Uint64("user_id", user.ID))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ResolveUser maps the identity header value to a stored user.
func (s *AuthService) ResolveUser(ctx context.Context, email string) (domain.User, error) {
	return s.userRepository.GetUserByEmail(ctx, NormalizeEmail(email))
}

var _ ports.AuthService = (*AuthService)(nil)

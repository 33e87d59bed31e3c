package auth

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/jwt"

	"github.com/cinecms/backend/internal/domain"
)

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	Register(ctx context.Context, in domain.UserInput) (*domain.User, error)
	Profile(ctx context.Context, userID uint) (*domain.User, error)
}

// authService implements Service.
type authService struct {
	jwtSvc      jwt.Service
	users       domain.UserService
	userRepo    domain.UserRepository
	tokenExpiry time.Duration
}

// NewService creates a new auth Service. Registration delegates to the user
// service so the same validation and uniqueness rules apply.
func NewService(jwtSvc jwt.Service, users domain.UserService, userRepo domain.UserRepository, tokenExpiry time.Duration) Service {
	return &authService{
		jwtSvc:      jwtSvc,
		users:       users,
		userRepo:    userRepo,
		tokenExpiry: tokenExpiry,
	}
}

// Login authenticates a user by username and password and returns a JWT token.
func (s *authService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.userRepo.GetByField(ctx, "username", username)
	if err != nil {
		// Don't reveal whether the user exists; always return unauthorized.
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwtSvc.GenerateToken(
		strconv.FormatUint(uint64(user.ID), 10),
		nil,
		s.tokenExpiry,
	)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	parsedToken, parseErr := s.jwtSvc.ParseToken(token)
	if parseErr != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to parse generated token", parseErr)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: parsedToken.ExpiresAt.Unix(),
	}, nil
}

// Register creates a new user with the given credentials. Self-registered
// accounts have no acting user, so audit fields stay unset.
func (s *authService) Register(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	return s.users.Create(ctx, in, 0)
}

// Profile returns the user record of the authenticated caller.
func (s *authService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, domain.ErrUnauthorized
	}
	return s.users.Get(ctx, userID)
}

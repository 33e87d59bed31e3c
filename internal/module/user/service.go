package user

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewService creates a UserService with the given repository.
func NewService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// Create validates input, checks username and email uniqueness, hashes the
// password, stamps the acting user, and persists.
func (s *userService) Create(ctx context.Context, in domain.UserInput, actorID uint) (*domain.User, error) {
	in, err := s.normalize(ctx, in, false)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Username, in.Email, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Image:        in.Image,
		Status:       in.Status,
		RoleID:       in.RoleID,
	}
	user.Stamp(actorID)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by ID.
func (s *userService) Get(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of user projections.
func (s *userService) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.UserListItem], error) {
	return s.repo.List(ctx, filter)
}

// Update loads the existing user, applies the validated input over it,
// re-checks uniqueness excluding the user itself, re-hashes the password
// when a new one was supplied, re-stamps, and persists.
func (s *userService) Update(ctx context.Context, id uint, in domain.UserInput, actorID uint) (*domain.User, error) {
	in, err := s.normalize(ctx, in, true)
	if err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Username, in.Email, user.ID); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Username = in.Username
	user.Phone = in.Phone
	user.Image = in.Image
	user.Status = in.Status
	user.RoleID = in.RoleID

	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	user.Restamp(actorID)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user by ID.
func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("user not found")
		}
		return err
	}
	return nil
}

// normalize trims and validates input. On update the password is optional
// (empty keeps the current hash); on create it is required.
func (s *userService) normalize(ctx context.Context, in domain.UserInput, forUpdate bool) (domain.UserInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return in, domain.NewValidation("name is required")
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return in, domain.NewValidation("name must be at most 100 characters")
	}
	if in.Username == "" {
		return in, domain.NewValidation("username is required")
	}
	if in.Email == "" {
		return in, domain.NewValidation("email is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return in, domain.NewValidation("email must be a valid email address")
	}
	if err := validatePassword(in.Password, forUpdate); err != nil {
		return in, err
	}
	if in.Status != 0 && in.Status != 1 {
		return in, domain.NewValidation("status must be 0 or 1")
	}

	if in.RoleID != nil {
		ok, err := s.repo.RoleExists(ctx, *in.RoleID)
		if err != nil {
			return in, err
		}
		if !ok {
			return in, domain.NewValidation("role does not exist")
		}
	}

	return in, nil
}

// validatePassword enforces bcrypt-compatible password bounds.
func validatePassword(password string, optional bool) error {
	if password == "" {
		if optional {
			return nil
		}
		return domain.NewValidation("password is required")
	}
	if len(password) < 8 {
		return domain.NewValidation("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return domain.NewValidation("password must not exceed 72 characters")
	}
	return nil
}

// checkUnique probes username and email concurrently and aggregates collisions.
func (s *userService) checkUnique(ctx context.Context, username, email string, excludeID uint) error {
	lookup := func(field string) func(ctx context.Context, value string) (uint, error) {
		return func(ctx context.Context, value string) (uint, error) {
			user, err := s.repo.GetByField(ctx, field, value)
			if err != nil {
				return 0, err
			}
			return user.ID, nil
		}
	}

	return pkg.CheckUnique(ctx, []pkg.FieldCheck{
		{Field: "username", Value: username, Message: "username already exists", Lookup: lookup("username")},
		{Field: "email", Value: email, Message: "email already exists", Lookup: lookup("email")},
	}, excludeID)
}

package role

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// roleService implements domain.RoleService.
type roleService struct {
	repo domain.RoleRepository
}

// NewService creates a RoleService with the given repository.
func NewService(repo domain.RoleRepository) domain.RoleService {
	return &roleService{repo: repo}
}

// Create validates input, checks name uniqueness and permission existence,
// stamps the acting user, and persists the role with its attachments.
func (s *roleService) Create(ctx context.Context, in domain.RoleInput, actorID uint) (*domain.Role, error) {
	in, err := s.normalize(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	role := &domain.Role{
		Name:          in.Name,
		Status:        in.Status,
		PermissionIDs: in.PermissionIDs,
	}
	role.Stamp(actorID)

	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Get retrieves a role by ID.
func (s *roleService) Get(ctx context.Context, id uint) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("role not found")
		}
		return nil, err
	}
	return role, nil
}

// List returns a page of role projections.
func (s *roleService) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.RoleListItem], error) {
	return s.repo.List(ctx, filter)
}

// Select returns the active roles as dropdown items.
func (s *roleService) Select(ctx context.Context) ([]domain.SelectItem, error) {
	return s.repo.Select(ctx)
}

// Update loads the existing role, applies the validated input, re-checks name
// uniqueness excluding the role itself, re-stamps, and persists.
func (s *roleService) Update(ctx context.Context, id uint, in domain.RoleInput, actorID uint) (*domain.Role, error) {
	in, err := s.normalize(ctx, in)
	if err != nil {
		return nil, err
	}

	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Name, role.ID); err != nil {
		return nil, err
	}

	role.Name = in.Name
	role.Status = in.Status
	role.PermissionIDs = in.PermissionIDs
	role.Restamp(actorID)

	if err := s.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role by ID.
func (s *roleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound("role not found")
		}
		return err
	}
	return nil
}

// normalize trims and validates input and verifies that every attached
// permission id exists. Duplicate ids are collapsed.
func (s *roleService) normalize(ctx context.Context, in domain.RoleInput) (domain.RoleInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, domain.NewValidation("name is required")
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return in, domain.NewValidation("name must be at most 100 characters")
	}
	if in.Status != 0 && in.Status != 1 {
		return in, domain.NewValidation("status must be 0 or 1")
	}

	ids := slices.Clone(in.PermissionIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		if id == 0 {
			return in, domain.NewValidation("permission ids must be positive")
		}
	}
	in.PermissionIDs = ids

	ok, err := s.repo.PermissionsExist(ctx, ids)
	if err != nil {
		return in, err
	}
	if !ok {
		return in, domain.NewValidation("one or more permissions do not exist")
	}

	return in, nil
}

// checkUnique probes the role name and reports a conflict keyed by field.
func (s *roleService) checkUnique(ctx context.Context, name string, excludeID uint) error {
	return pkg.CheckUnique(ctx, []pkg.FieldCheck{
		{
			Field:   "name",
			Value:   name,
			Message: "role name already exists",
			Lookup: func(ctx context.Context, value string) (uint, error) {
				role, err := s.repo.GetByName(ctx, value)
				if err != nil {
					return 0, err
				}
				return role.ID, nil
			},
		},
	}, excludeID)
}

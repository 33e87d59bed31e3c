package taxonomy

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// taxonomyService implements domain.TaxonomyService for one resource.
type taxonomyService struct {
	repo     domain.TaxonomyRepository
	resource string
}

// NewService creates a TaxonomyService with the given repository.
func NewService(repo domain.TaxonomyRepository, desc Descriptor) domain.TaxonomyService {
	return &taxonomyService{repo: repo, resource: desc.Resource}
}

// Create validates input, derives the slug, checks uniqueness, stamps the
// acting user, and persists.
func (s *taxonomyService) Create(ctx context.Context, in domain.TaxonomyInput, actorID uint) (*domain.Taxonomy, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Title, in.Slug, 0); err != nil {
		return nil, err
	}

	rec := &domain.Taxonomy{
		Title:       in.Title,
		Description: in.Description,
		Slug:        in.Slug,
		Position:    in.Position,
		Status:      in.Status,
	}
	rec.Stamp(actorID)

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get retrieves a record by ID.
func (s *taxonomyService) Get(ctx context.Context, id uint) (*domain.Taxonomy, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound(s.resource + " not found")
		}
		return nil, err
	}
	return rec, nil
}

// List returns a page of list projections.
func (s *taxonomyService) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.TaxonomyListItem], error) {
	return s.repo.List(ctx, filter)
}

// Select returns the active records as dropdown items.
func (s *taxonomyService) Select(ctx context.Context) ([]domain.SelectItem, error) {
	return s.repo.Select(ctx)
}

// Update loads the existing record, applies the validated input over it,
// re-checks uniqueness excluding the record itself, re-stamps the acting
// user, and persists.
func (s *taxonomyService) Update(ctx context.Context, id uint, in domain.TaxonomyInput, actorID uint) (*domain.Taxonomy, error) {
	in, err := s.normalize(in)
	if err != nil {
		return nil, err
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, in.Title, in.Slug, rec.ID); err != nil {
		return nil, err
	}

	rec.Title = in.Title
	rec.Description = in.Description
	rec.Slug = in.Slug
	rec.Position = in.Position
	rec.Status = in.Status
	rec.Restamp(actorID)

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record by ID.
func (s *taxonomyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewNotFound(s.resource + " not found")
		}
		return err
	}
	return nil
}

// normalize trims input, derives the slug from the title when no slug was
// supplied, and enforces the business constraints that do not depend on
// other records.
func (s *taxonomyService) normalize(in domain.TaxonomyInput) (domain.TaxonomyInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return in, domain.NewValidation("title is required")
	}
	if utf8.RuneCountInString(in.Title) > 255 {
		return in, domain.NewValidation("title must be at most 255 characters")
	}

	source := strings.TrimSpace(in.Slug)
	if source == "" {
		source = in.Title
	}
	in.Slug = pkg.Slugify(source)
	if in.Slug == "" {
		return in, domain.NewValidation("slug cannot be derived from title")
	}

	if in.Position < 0 {
		return in, domain.NewValidation("position must not be negative")
	}
	if in.Status != 0 && in.Status != 1 {
		return in, domain.NewValidation("status must be 0 or 1")
	}

	return in, nil
}

// checkUnique probes title and slug concurrently and aggregates collisions.
func (s *taxonomyService) checkUnique(ctx context.Context, title, slug string, excludeID uint) error {
	lookup := func(field string) func(ctx context.Context, value string) (uint, error) {
		return func(ctx context.Context, value string) (uint, error) {
			rec, err := s.repo.GetByField(ctx, field, value)
			if err != nil {
				return 0, err
			}
			return rec.ID, nil
		}
	}

	return pkg.CheckUnique(ctx, []pkg.FieldCheck{
		{Field: "title", Value: title, Message: s.resource + " title already exists", Lookup: lookup("title")},
		{Field: "slug", Value: slug, Message: "slug already in use", Lookup: lookup("slug")},
	}, excludeID)
}

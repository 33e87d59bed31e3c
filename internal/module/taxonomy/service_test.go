package taxonomy

import (
	"context"
	"strings"
	"testing"

	"github.com/cinecms/backend/internal/domain"
)

// fakeRepo implements domain.TaxonomyRepository in memory.
type fakeRepo struct {
	records map[uint]*domain.Taxonomy
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uint]*domain.Taxonomy), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, rec *domain.Taxonomy) error {
	rec.ID = f.nextID
	f.nextID++
	clone := *rec
	f.records[rec.ID] = &clone
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*domain.Taxonomy, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeRepo) GetByField(_ context.Context, field, value string) (*domain.Taxonomy, error) {
	for _, rec := range f.records {
		switch field {
		case "title":
			if rec.Title == value {
				clone := *rec
				return &clone, nil
			}
		case "slug":
			if rec.Slug == value {
				clone := *rec
				return &clone, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRepo) List(context.Context, domain.ListFilter) (*domain.PageResult[domain.TaxonomyListItem], error) {
	return &domain.PageResult[domain.TaxonomyListItem]{Items: []domain.TaxonomyListItem{}}, nil
}

func (f *fakeRepo) Select(context.Context) ([]domain.SelectItem, error) {
	return []domain.SelectItem{}, nil
}

func (f *fakeRepo) Update(_ context.Context, rec *domain.Taxonomy) error {
	if _, ok := f.records[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *rec
	f.records[rec.ID] = &clone
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func newCategoryService(repo domain.TaxonomyRepository) domain.TaxonomyService {
	return NewService(repo, Category)
}

func TestServiceCreate_DerivesSlugFromTitle(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	rec, err := svc.Create(context.Background(), domain.TaxonomyInput{Title: "Hành Động", Status: 1}, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Slug != "hanh-dong" {
		t.Errorf("Slug = %q; want hanh-dong", rec.Slug)
	}
}

func TestServiceCreate_ExplicitSlugIsNormalized(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	rec, err := svc.Create(context.Background(), domain.TaxonomyInput{Title: "Action", Slug: "Phim Lẻ"}, 0)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Slug != "phim-le" {
		t.Errorf("Slug = %q; want phim-le", rec.Slug)
	}
}

func TestServiceCreate_Validation(t *testing.T) {
	svc := newCategoryService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		in   domain.TaxonomyInput
	}{
		{"empty title", domain.TaxonomyInput{Title: "   "}},
		{"title too long", domain.TaxonomyInput{Title: strings.Repeat("x", 256)}},
		{"negative position", domain.TaxonomyInput{Title: "ok", Position: -1}},
		{"bad status", domain.TaxonomyInput{Title: "ok", Status: 7}},
		{"underivable slug", domain.TaxonomyInput{Title: "!!!"}},
	}

	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.in, 0); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestServiceCreate_ConflictAggregatesBothFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newCategoryService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.TaxonomyInput{Title: "Taken", Slug: "taken"}, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(ctx, domain.TaxonomyInput{Title: "Taken", Slug: "taken"}, 0)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	fields := domain.ConflictFields(err)
	if _, ok := fields["title"]; !ok {
		t.Error("expected title collision to be reported")
	}
	if _, ok := fields["slug"]; !ok {
		t.Error("expected slug collision to be reported")
	}
}

func TestServiceCreate_StampsActor(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	rec, err := svc.Create(context.Background(), domain.TaxonomyInput{Title: "Stamped"}, 11)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.CreatedBy == nil || *rec.CreatedBy != 11 {
		t.Errorf("CreatedBy = %v; want 11", rec.CreatedBy)
	}
	if rec.UpdatedBy == nil || *rec.UpdatedBy != 11 {
		t.Errorf("UpdatedBy = %v; want 11", rec.UpdatedBy)
	}
}

func TestServiceUpdate_KeepsOwnValues(t *testing.T) {
	repo := newFakeRepo()
	svc := newCategoryService(repo)
	ctx := context.Background()

	rec, err := svc.Create(ctx, domain.TaxonomyInput{Title: "Mine", Slug: "mine"}, 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Re-submitting the same title and slug must not conflict with itself.
	updated, err := svc.Update(ctx, rec.ID, domain.TaxonomyInput{Title: "Mine", Slug: "mine", Status: 1}, 6)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != 1 {
		t.Errorf("Status = %d; want 1", updated.Status)
	}
	if updated.CreatedBy == nil || *updated.CreatedBy != 5 {
		t.Errorf("CreatedBy = %v; want original actor 5", updated.CreatedBy)
	}
	if updated.UpdatedBy == nil || *updated.UpdatedBy != 6 {
		t.Errorf("UpdatedBy = %v; want 6", updated.UpdatedBy)
	}
}

func TestServiceUpdate_ConflictWithOtherRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := newCategoryService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.TaxonomyInput{Title: "Other", Slug: "other"}, 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	mine, err := svc.Create(ctx, domain.TaxonomyInput{Title: "Mine", Slug: "mine"}, 0)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.Update(ctx, mine.ID, domain.TaxonomyInput{Title: "Other", Slug: "mine"}, 0)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on another record's title, got %v", err)
	}
	fields := domain.ConflictFields(err)
	if _, ok := fields["title"]; !ok {
		t.Error("expected title in conflict details")
	}
	if _, ok := fields["slug"]; ok {
		t.Error("own slug must not be reported as a collision")
	}
}

func TestServiceUpdate_NotFound(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	_, err := svc.Update(context.Background(), 404, domain.TaxonomyInput{Title: "X"}, 0)
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestServiceGet_NotFoundMessage(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	_, err := svc.Get(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "category not found" {
		t.Errorf("message = %q; want resource-specific wording", err.Error())
	}
}

func TestServiceDelete_NotFound(t *testing.T) {
	svc := newCategoryService(newFakeRepo())

	err := svc.Delete(context.Background(), 404)
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

package pkg

import (
	"context"
	"errors"
	"testing"

	"github.com/cinecms/backend/internal/domain"
)

// lookupTable fakes a storage lookup: value → existing record id.
func lookupTable(existing map[string]uint) func(ctx context.Context, value string) (uint, error) {
	return func(_ context.Context, value string) (uint, error) {
		if id, ok := existing[value]; ok {
			return id, nil
		}
		return 0, domain.ErrNotFound
	}
}

func TestCheckUnique_NoCollision(t *testing.T) {
	checks := []FieldCheck{
		{Field: "title", Value: "Free Title", Message: "title taken", Lookup: lookupTable(nil)},
		{Field: "slug", Value: "free-slug", Message: "slug taken", Lookup: lookupTable(nil)},
	}

	if err := CheckUnique(context.Background(), checks, 0); err != nil {
		t.Fatalf("CheckUnique: %v", err)
	}
}

func TestCheckUnique_AggregatesAllCollisions(t *testing.T) {
	checks := []FieldCheck{
		{Field: "title", Value: "Taken", Message: "title taken", Lookup: lookupTable(map[string]uint{"Taken": 7})},
		{Field: "slug", Value: "taken", Message: "slug taken", Lookup: lookupTable(map[string]uint{"taken": 8})},
	}

	err := CheckUnique(context.Background(), checks, 0)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	fields := domain.ConflictFields(err)
	if fields["title"] != "title taken" {
		t.Errorf("title message = %q; want %q", fields["title"], "title taken")
	}
	if fields["slug"] != "slug taken" {
		t.Errorf("slug message = %q; want %q", fields["slug"], "slug taken")
	}
}

func TestCheckUnique_ExcludesSelf(t *testing.T) {
	checks := []FieldCheck{
		{Field: "title", Value: "Mine", Message: "title taken", Lookup: lookupTable(map[string]uint{"Mine": 42})},
	}

	if err := CheckUnique(context.Background(), checks, 42); err != nil {
		t.Fatalf("expected no conflict with own record, got %v", err)
	}

	// A different record holding the value is still a collision.
	err := CheckUnique(context.Background(), checks, 41)
	if !domain.IsConflict(err) {
		t.Errorf("expected conflict against another record, got %v", err)
	}
}

func TestCheckUnique_SkipsEmptyValues(t *testing.T) {
	called := false
	checks := []FieldCheck{
		{Field: "slug", Value: "", Message: "slug taken", Lookup: func(context.Context, string) (uint, error) {
			called = true
			return 1, nil
		}},
	}

	if err := CheckUnique(context.Background(), checks, 0); err != nil {
		t.Fatalf("CheckUnique: %v", err)
	}
	if called {
		t.Error("lookup should not run for empty values")
	}
}

func TestCheckUnique_LookupFailure(t *testing.T) {
	boom := errors.New("db down")
	checks := []FieldCheck{
		{Field: "title", Value: "x", Message: "m", Lookup: func(context.Context, string) (uint, error) {
			return 0, boom
		}},
	}

	err := CheckUnique(context.Background(), checks, 0)
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("expected wrapped lookup error")
	}
}

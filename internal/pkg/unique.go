package pkg

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/cinecms/backend/internal/domain"
)

// FieldCheck describes one field-level uniqueness probe. Lookup resolves the
// id of an existing record holding value, or a NotFound error when the value
// is free. Message is reported when the value collides.
type FieldCheck struct {
	Field   string
	Value   string
	Message string
	Lookup  func(ctx context.Context, value string) (uint, error)
}

// CheckUnique runs the given field checks concurrently against the store and
// aggregates every collision into a single conflict error, keyed by field
// name. A record matching excludeID is not a collision: on update, a record
// never conflicts with its own prior values. Checks with empty values are
// skipped. Lookup failures other than NotFound abort the whole check.
//
// Callers must not mutate storage when the returned error is non-nil. The
// check-then-act sequence is not transactional against concurrent writers;
// unique indexes at the persistence layer are the backstop.
func CheckUnique(ctx context.Context, checks []FieldCheck, excludeID uint) error {
	var (
		mu        sync.Mutex
		conflicts = make(map[string]string)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, check := range checks {
		if check.Value == "" {
			continue
		}
		g.Go(func() error {
			id, err := check.Lookup(gctx, check.Value)
			if err != nil {
				if domain.IsNotFound(err) {
					return nil
				}
				return err
			}
			if excludeID != 0 && id == excludeID {
				return nil
			}
			mu.Lock()
			conflicts[check.Field] = check.Message
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.NewAppError(domain.CodeInternal, "uniqueness check failed", err)
	}

	if len(conflicts) > 0 {
		return domain.NewConflict(conflicts)
	}
	return nil
}

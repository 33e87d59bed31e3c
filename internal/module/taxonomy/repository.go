package taxonomy

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/pkg"
)

// Allowed fields for sorting and direct lookups in list queries.
var (
	allowedSortFields   = []string{"id", "title", "slug", "position", "status", "created_at", "updated_at"}
	allowedLookupFields = map[string]bool{"title": true, "slug": true}
)

// taxonomyRepository implements domain.TaxonomyRepository using GORM,
// bound to one concrete table.
type taxonomyRepository struct {
	db    *gorm.DB
	desc  Descriptor
	table string
}

// NewRepository creates a TaxonomyRepository for the given resource table.
func NewRepository(db *gorm.DB, desc Descriptor) domain.TaxonomyRepository {
	return &taxonomyRepository{db: db, desc: desc, table: desc.Table}
}

// Create inserts a new record.
func (r *taxonomyRepository) Create(ctx context.Context, rec *domain.Taxonomy) error {
	if err := r.db.WithContext(ctx).Table(r.table).Create(rec).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a record by its primary key.
func (r *taxonomyRepository) GetByID(ctx context.Context, id uint) (*domain.Taxonomy, error) {
	var rec domain.Taxonomy
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &rec, nil
}

// GetByField retrieves a record by an exact match on one business field.
// Only title and slug lookups are supported; this is what the uniqueness
// checks run against.
func (r *taxonomyRepository) GetByField(ctx context.Context, field, value string) (*domain.Taxonomy, error) {
	if !allowedLookupFields[field] {
		return nil, domain.NewValidation("unsupported lookup field: " + field)
	}

	var rec domain.Taxonomy
	if err := r.db.WithContext(ctx).Table(r.table).Where(field+" = ?", value).First(&rec).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &rec, nil
}

// taxonomyRow is the raw list projection scanned from the join query.
type taxonomyRow struct {
	ID            uint
	Title         string
	Description   string
	Slug          string
	Position      int
	Status        int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedByName string
	UpdatedByName string
}

// List returns a paginated, sorted, and filtered page of list projections,
// with the audit user ids resolved to names.
func (r *taxonomyRepository) List(ctx context.Context, filter domain.ListFilter) (*domain.PageResult[domain.TaxonomyListItem], error) {
	base := r.db.WithContext(ctx).Table(r.table+" AS t").
		Joins("LEFT JOIN users cu ON cu.id = t.created_by").
		Joins("LEFT JOIN users uu ON uu.id = t.updated_by").
		Scopes(
			pkg.TitleLike("t.title", filter.Title),
			pkg.StatusEq("t.status", filter.Status),
		)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var rows []taxonomyRow
	err := base.
		Select("t.id, t.title, t.description, t.slug, t.position, t.status, t.created_at, t.updated_at, cu.name AS created_by_name, uu.name AS updated_by_name").
		Scopes(
			pkg.SortBy(filter.Sort, allowedSortFields, "t.", r.desc.DefaultOrder),
			pkg.Paginate(filter.Page, filter.PageSize),
		).
		Scan(&rows).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}

	items := make([]domain.TaxonomyListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.TaxonomyListItem{
			ID:          row.ID,
			Title:       row.Title,
			Slug:        row.Slug,
			Description: row.Description,
			Position:    row.Position,
			Status:      row.Status,
			CreatedAt:   pkg.FormatTime(row.CreatedAt),
			UpdatedAt:   pkg.FormatTime(row.UpdatedAt),
			CreatedBy:   row.CreatedByName,
			UpdatedBy:   row.UpdatedByName,
		})
	}

	return pkg.NewPageResult(items, total, filter), nil
}

// Select returns the active records as dropdown items, ordered by position
// then id so the sequence is stable.
func (r *taxonomyRepository) Select(ctx context.Context) ([]domain.SelectItem, error) {
	var items []domain.SelectItem
	err := r.db.WithContext(ctx).Table(r.table).
		Select("id, title, slug").
		Where("status = ?", 1).
		Order("position asc").
		Order("id asc").
		Scan(&items).Error
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	if items == nil {
		items = []domain.SelectItem{}
	}
	return items, nil
}

// Update saves changes to an existing record.
func (r *taxonomyRepository) Update(ctx context.Context, rec *domain.Taxonomy) error {
	if err := r.db.WithContext(ctx).Table(r.table).Save(rec).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a record by ID.
func (r *taxonomyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&domain.Taxonomy{})
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

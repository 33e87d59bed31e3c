package domain

import "context"

// Taxonomy is the row shape shared by the taxonomy-like CMS resources:
// categories, genres, countries, and permissions. The four resources live in
// separate tables with identical columns; repositories bind this struct to a
// concrete table at construction time.
type Taxonomy struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Position    int    `gorm:"default:0" json:"position"`
	Status      int    `gorm:"default:0;index" json:"status"`
}

// TaxonomyListItem is the list projection of a taxonomy record: audit user
// ids resolved to display names, timestamps formatted for presentation.
type TaxonomyListItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Position    int    `json:"position"`
	Status      int    `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	CreatedBy   string `json:"created_by"`
	UpdatedBy   string `json:"updated_by"`
}

// TaxonomyRepository defines the data access interface for one taxonomy table.
type TaxonomyRepository interface {
	Create(ctx context.Context, rec *Taxonomy) error
	GetByID(ctx context.Context, id uint) (*Taxonomy, error)
	GetByField(ctx context.Context, field, value string) (*Taxonomy, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[TaxonomyListItem], error)
	Select(ctx context.Context) ([]SelectItem, error)
	Update(ctx context.Context, rec *Taxonomy) error
	Delete(ctx context.Context, id uint) error
}

// TaxonomyInput is the validated business input for create and update.
type TaxonomyInput struct {
	Title       string
	Description string
	Slug        string
	Position    int
	Status      int
}

// TaxonomyService defines the business logic interface for one taxonomy resource.
// actorID identifies the authenticated caller for audit stamping; zero means none.
type TaxonomyService interface {
	Create(ctx context.Context, in TaxonomyInput, actorID uint) (*Taxonomy, error)
	Get(ctx context.Context, id uint) (*Taxonomy, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[TaxonomyListItem], error)
	Select(ctx context.Context) ([]SelectItem, error)
	Update(ctx context.Context, id uint, in TaxonomyInput, actorID uint) (*Taxonomy, error)
	Delete(ctx context.Context, id uint) error
}

package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt,
// and adds the audit columns every CMS table carries. CreatedBy/UpdatedBy are
// nullable: system-generated records have no acting user.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy *uint     `gorm:"index" json:"created_by"`
	UpdatedBy *uint     `json:"updated_by"`
}

// Stamp records the acting user on a new record. A zero actor id means the
// caller is unauthenticated or system-level and leaves the columns null.
func (m *BaseModel) Stamp(actorID uint) {
	if actorID == 0 {
		return
	}
	m.CreatedBy = &actorID
	m.UpdatedBy = &actorID
}

// Restamp records the acting user on an updated record.
func (m *BaseModel) Restamp(actorID uint) {
	if actorID == 0 {
		return
	}
	m.UpdatedBy = &actorID
}

// ListFilter holds the list query parameters shared by every resource.
// Status is a pointer so that a filter on status 0 (inactive) is
// distinguishable from no status filter at all.
type ListFilter struct {
	Title    string
	Status   *int
	Page     int
	PageSize int
	Sort     string // "field:asc" or "field:desc"; empty means resource default
}

// PageResult wraps one page of items with pagination metadata.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// SelectItem is the reduced projection used to populate dropdowns.
type SelectItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

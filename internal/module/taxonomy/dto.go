package taxonomy

import "github.com/cinecms/backend/internal/domain"

// CreateRequest represents the input for creating a taxonomy record.
// Slug is optional: when absent it is derived from the title.
type CreateRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"omitempty,max=1000"`
	Slug        string `json:"slug" form:"slug" binding:"omitempty,max=255"`
	Position    int    `json:"position" form:"position" binding:"omitempty,min=0"`
	Status      int    `json:"status" form:"status" binding:"oneof=0 1"`
}

// UpdateRequest represents the input for updating a taxonomy record.
type UpdateRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"omitempty,max=1000"`
	Slug        string `json:"slug" form:"slug" binding:"omitempty,max=255"`
	Position    int    `json:"position" form:"position" binding:"omitempty,min=0"`
	Status      int    `json:"status" form:"status" binding:"oneof=0 1"`
}

func (r CreateRequest) input() domain.TaxonomyInput {
	return domain.TaxonomyInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		Position:    r.Position,
		Status:      r.Status,
	}
}

func (r UpdateRequest) input() domain.TaxonomyInput {
	return domain.TaxonomyInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		Position:    r.Position,
		Status:      r.Status,
	}
}

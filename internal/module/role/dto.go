package role

import "github.com/cinecms/backend/internal/domain"

// CreateRequest represents the input for creating a role.
type CreateRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Status      int    `json:"status" form:"status" binding:"oneof=0 1"`
	Permissions []uint `json:"permissions" form:"permissions" binding:"omitempty,dive,min=1"`
}

// UpdateRequest represents the input for updating a role.
type UpdateRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Status      int    `json:"status" form:"status" binding:"oneof=0 1"`
	Permissions []uint `json:"permissions" form:"permissions" binding:"omitempty,dive,min=1"`
}

func (r CreateRequest) input() domain.RoleInput {
	return domain.RoleInput{Name: r.Name, Status: r.Status, PermissionIDs: r.Permissions}
}

func (r UpdateRequest) input() domain.RoleInput {
	return domain.RoleInput{Name: r.Name, Status: r.Status, PermissionIDs: r.Permissions}
}

package domain

import "context"

// Role groups permissions for assignment to users.
type Role struct {
	BaseModel
	Name   string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Status int    `gorm:"default:0;index" json:"status"`

	// PermissionIDs is populated from the role_permissions join table;
	// it is not a column on roles.
	PermissionIDs []uint `gorm:"-" json:"permissions"`
}

// RolePermission is one row of the role ↔ permission join table.
type RolePermission struct {
	RoleID       uint `gorm:"primaryKey" json:"role_id"`
	PermissionID uint `gorm:"primaryKey" json:"permission_id"`
}

// RoleListItem is the list projection of a role.
type RoleListItem struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Status          int    `json:"status"`
	PermissionCount int    `json:"permission_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	CreatedBy       string `json:"created_by"`
	UpdatedBy       string `json:"updated_by"`
}

// RoleRepository defines the data access interface for roles.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[RoleListItem], error)
	Select(ctx context.Context) ([]SelectItem, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	PermissionsExist(ctx context.Context, ids []uint) (bool, error)
}

// RoleInput is the validated business input for role create and update.
type RoleInput struct {
	Name          string
	Status        int
	PermissionIDs []uint
}

// RoleService defines the business logic interface for roles.
type RoleService interface {
	Create(ctx context.Context, in RoleInput, actorID uint) (*Role, error)
	Get(ctx context.Context, id uint) (*Role, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[RoleListItem], error)
	Select(ctx context.Context) ([]SelectItem, error)
	Update(ctx context.Context, id uint, in RoleInput, actorID uint) (*Role, error)
	Delete(ctx context.Context, id uint) error
}

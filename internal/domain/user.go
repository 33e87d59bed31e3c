package domain

import "context"

// User represents a CMS back-office user.
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Image        string `gorm:"size:500" json:"image"`
	Status       int    `gorm:"default:0;index" json:"status"`
	RoleID       *uint  `gorm:"index" json:"role_id"`
}

// UserListItem is the list projection of a user: no credential material,
// role id resolved to the role name.
type UserListItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Phone     string `json:"phone"`
	Status    int    `json:"status"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByField(ctx context.Context, field, value string) (*User, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[UserListItem], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	RoleExists(ctx context.Context, id uint) (bool, error)
}

// UserInput is the validated business input for user create and update.
// Password is the plaintext to hash; empty on update means keep the current hash.
type UserInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Phone    string
	Image    string
	Status   int
	RoleID   *uint
}

// UserService defines the business logic interface for users.
type UserService interface {
	Create(ctx context.Context, in UserInput, actorID uint) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, filter ListFilter) (*PageResult[UserListItem], error)
	Update(ctx context.Context, id uint, in UserInput, actorID uint) (*User, error)
	Delete(ctx context.Context, id uint) error
}

package user

import "github.com/cinecms/backend/internal/domain"

// CreateRequest represents the input for creating a user.
type CreateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"required,min=8,max=72"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Image    string `json:"image" form:"image" binding:"omitempty,max=500"`
	Status   int    `json:"status" form:"status" binding:"oneof=0 1"`
	RoleID   *uint  `json:"role_id" form:"role_id" binding:"omitempty,min=1"`
}

// UpdateRequest represents the input for updating a user. An empty password
// keeps the current one.
type UpdateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Username string `json:"username" form:"username" binding:"required,max=100"`
	Password string `json:"password" form:"password" binding:"omitempty,min=8,max=72"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Image    string `json:"image" form:"image" binding:"omitempty,max=500"`
	Status   int    `json:"status" form:"status" binding:"oneof=0 1"`
	RoleID   *uint  `json:"role_id" form:"role_id" binding:"omitempty,min=1"`
}

func (r CreateRequest) input() domain.UserInput {
	return domain.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Phone:    r.Phone,
		Image:    r.Image,
		Status:   r.Status,
		RoleID:   r.RoleID,
	}
}

func (r UpdateRequest) input() domain.UserInput {
	return domain.UserInput{
		Name:     r.Name,
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Phone:    r.Phone,
		Image:    r.Image,
		Status:   r.Status,
		RoleID:   r.RoleID,
	}
}

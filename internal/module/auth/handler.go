package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/middleware"
	"github.com/cinecms/backend/internal/pkg"
)

// Handler handles REST API requests for authentication.
type Handler struct {
	svc Service
}

// NewHandler creates a new auth Handler with the given service.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	tokenResp, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "login successful", tokenResp)
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), domain.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "user registered successfully", profileResponse(user))
}

// Profile handles GET /api/v1/auth/profile.
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "user profile", profileResponse(user))
}

func profileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Username:  user.Username,
		Phone:     user.Phone,
		Image:     user.Image,
		RoleID:    user.RoleID,
		CreatedAt: user.CreatedAt,
	}
}

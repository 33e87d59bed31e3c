package user

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/middleware"
	"github.com/cinecms/backend/internal/pkg"
)

// Handler handles REST API requests for the user resource.
type Handler struct {
	svc domain.UserService
}

// NewHandler creates a Handler with the given service.
func NewHandler(svc domain.UserService) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /user.
func (h *Handler) List(c *gin.Context) {
	filter := pkg.ParseListFilter(c)

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "user list", result)
}

// Get handles GET /user/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	user, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "user detail", user)
}

// Create handles POST /user.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Create(c.Request.Context(), req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "user created", user)
}

// Update handles PUT /user/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req UpdateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Update(c.Request.Context(), id, req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "user updated", user)
}

// Delete handles DELETE /user/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "user deleted", nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidation("id must be a positive integer")
	}
	return uint(id), nil
}

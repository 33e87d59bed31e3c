package role

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/middleware"
	"github.com/cinecms/backend/internal/pkg"
)

// Handler handles REST API requests for the role resource.
type Handler struct {
	svc domain.RoleService
}

// NewHandler creates a role Handler with the given service.
func NewHandler(svc domain.RoleService) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /role.
func (h *Handler) List(c *gin.Context) {
	filter := pkg.ParseListFilter(c)

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, "role list", result)
}

// Select handles GET /role/select.
func (h *Handler) Select(c *gin.Context) {
	items, err := h.svc.Select(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "role select list", items)
}

// Get handles GET /role/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	role, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "role detail", role)
}

// Create handles POST /role.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	role, err := h.svc.Create(c.Request.Context(), req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, "role created", role)
}

// Update handles PUT /role/:id.
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

	role, err := h.svc.Update(c.Request.Context(), id, req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, "role updated", role)
}

// Delete handles DELETE /role/:id.
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

	pkg.Success(c, "role deleted", nil)
}

// parseID extracts the numeric id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidation("id must be a positive integer")
	}
	return uint(id), nil
}

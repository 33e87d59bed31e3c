package taxonomy

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/middleware"
	"github.com/cinecms/backend/internal/pkg"
)

// Handler handles REST API requests for one taxonomy resource.
type Handler struct {
	svc      domain.TaxonomyService
	resource string
}

// NewHandler creates a Handler with the given service.
func NewHandler(svc domain.TaxonomyService, desc Descriptor) *Handler {
	return &Handler{svc: svc, resource: desc.Resource}
}

// List handles GET /{resource}.
func (h *Handler) List(c *gin.Context) {
	filter := pkg.ParseListFilter(c)

	result, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, h.resource+" list", result)
}

// Select handles GET /{resource}/select.
func (h *Handler) Select(c *gin.Context) {
	items, err := h.svc.Select(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, h.resource+" select list", items)
}

// Get handles GET /{resource}/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, h.resource+" detail", rec)
}

// Create handles POST /{resource}.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, h.resource+" created", rec)
}

// Update handles PUT /{resource}/:id.
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

	rec, err := h.svc.Update(c.Request.Context(), id, req.input(), middleware.ActorID(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, h.resource+" updated", rec)
}

// Delete handles DELETE /{resource}/:id.
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

	pkg.Success(c, h.resource+" deleted", nil)
}

// parseID extracts the numeric id path parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.NewValidation("id must be a positive integer")
	}
	return uint(id), nil
}

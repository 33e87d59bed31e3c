package role

import "github.com/gin-gonic/gin"

// Module wires the role resource into the router.
type Module struct {
	handler *Handler
	auth    gin.HandlerFunc
}

// NewModule creates a role Module. auth guards the mutating routes.
// Panics if h or auth is nil.
func NewModule(h *Handler, auth gin.HandlerFunc) *Module {
	if h == nil {
		panic("role.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("role.NewModule: auth middleware must not be nil")
	}
	return &Module{handler: h, auth: auth}
}

// RegisterRoutes registers role API routes. Reads are public; create,
// update, and delete require an authenticated caller.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/role")
	g.GET("", m.handler.List)
	g.GET("/select", m.handler.Select)
	g.GET("/:id", m.handler.Get)
	g.POST("", m.auth, m.handler.Create)
	g.PUT("/:id", m.auth, m.handler.Update)
	g.DELETE("/:id", m.auth, m.handler.Delete)
}

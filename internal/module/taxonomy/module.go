package taxonomy

import "github.com/gin-gonic/gin"

// Module wires one taxonomy resource into the router.
type Module struct {
	desc    Descriptor
	handler *Handler
	auth    gin.HandlerFunc
}

// NewModule creates a taxonomy Module. auth guards the mutating routes.
// Panics if h or auth is nil.
func NewModule(desc Descriptor, h *Handler, auth gin.HandlerFunc) *Module {
	if h == nil {
		panic("taxonomy.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("taxonomy.NewModule: auth middleware must not be nil")
	}
	return &Module{desc: desc, handler: h, auth: auth}
}

// RegisterRoutes registers the resource's API routes. Reads are public;
// create, update, and delete require an authenticated caller.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/" + m.desc.Resource)
	g.GET("", m.handler.List)
	g.GET("/select", m.handler.Select)
	g.GET("/:id", m.handler.Get)
	g.POST("", m.auth, m.handler.Create)
	g.PUT("/:id", m.auth, m.handler.Update)
	g.DELETE("/:id", m.auth, m.handler.Delete)
}

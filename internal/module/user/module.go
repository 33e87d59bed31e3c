package user

import "github.com/gin-gonic/gin"

// Module wires the user resource into the router.
type Module struct {
	handler *Handler
	auth    gin.HandlerFunc
}

// NewModule creates a user Module. auth guards every route: user records
// carry credentials, so even reads require an authenticated caller.
// Panics if h or auth is nil.
func NewModule(h *Handler, auth gin.HandlerFunc) *Module {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("user.NewModule: auth middleware must not be nil")
	}
	return &Module{handler: h, auth: auth}
}

// RegisterRoutes registers user API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/user", m.auth)
	g.GET("", m.handler.List)
	g.GET("/:id", m.handler.Get)
	g.POST("", m.handler.Create)
	g.PUT("/:id", m.handler.Update)
	g.DELETE("/:id", m.handler.Delete)
}

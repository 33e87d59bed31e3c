package auth

import "github.com/gin-gonic/gin"

// Module wires the authentication endpoints into the router.
type Module struct {
	handler *Handler
	auth    gin.HandlerFunc
}

// NewModule creates an auth Module. auth guards the profile route.
// Panics if h or auth is nil.
func NewModule(h *Handler, auth gin.HandlerFunc) *Module {
	if h == nil {
		panic("auth.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("auth.NewModule: auth middleware must not be nil")
	}
	return &Module{handler: h, auth: auth}
}

// RegisterRoutes registers auth API routes.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/auth")
	g.POST("/login", m.handler.Login)
	g.POST("/register", m.handler.Register)
	g.GET("/profile", m.auth, m.handler.Profile)
}

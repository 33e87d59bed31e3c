package app

import "github.com/gin-gonic/gin"

// Module is a resource module that mounts its own routes under the
// versioned API group. The taxonomy, role, user, and auth modules all
// implement it.
type Module interface {
	RegisterRoutes(api *gin.RouterGroup)
}

package http

import "github.com/gin-gonic/gin"

// Register expects the group to be behind FirebaseAuthMiddleware but not
// RequireUser: these routes are how a local user comes to exist.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/register", h.RegisterUser)
	rg.POST("/google", h.GoogleLogin)
	rg.GET("/user", h.GetUser)
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/connectify-hq/connectify/internal/interface/http"
)

// AuthModule registers the unauthenticated account endpoints: signup,
// login, the two-step recovery flow, and token verification.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", m.Handler.Signup)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/find-question", m.Handler.FindQuestion)
	rg.POST("/auth/reset-password", m.Handler.ResetPassword)
	rg.GET("/auth/verify", m.Handler.Verify)
}

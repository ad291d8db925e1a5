package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/connectify-hq/connectify/internal/interface/http"
)

// UserModule registers the public user search and public profile view.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users/search", m.Handler.Search)
	rg.GET("/users/:id/public", m.Handler.PublicProfile)
}

package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/connectify-hq/connectify/internal/domain/repository"
	handlers "github.com/connectify-hq/connectify/internal/interface/http"
	"github.com/connectify-hq/connectify/internal/interface/middleware"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

// PostModule wires the feed routes. Listing, single-post reads, search, and
// trending are public; creation and every mutation require the auth gateway.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager, users repository.UserRepository) *PostModule {
	return &PostModule{Handler: h, JWT: jwt, Users: users}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/trending", m.Handler.Trending)
	rg.GET("/posts/search/:keyword", m.Handler.Search)
	rg.GET("/posts/:id", m.Handler.Get)

	auth := rg.Group("/posts")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("/my-posts", m.Handler.MyPosts)
		auth.PUT("/:id", m.Handler.Edit)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.POST("/:id/like", m.Handler.Like)
		auth.POST("/:id/comment", m.Handler.Comment)
	}
}

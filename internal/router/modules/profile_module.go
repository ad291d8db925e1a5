package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/connectify-hq/connectify/internal/domain/repository"
	handlers "github.com/connectify-hq/connectify/internal/interface/http"
	"github.com/connectify-hq/connectify/internal/interface/middleware"
	"github.com/connectify-hq/connectify/pkg/helpers"
)

// ProfileModule wires the profile routes. GET /profile/:id is public; every
// mutation and /profile/me sit behind the auth gateway.
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager, users repository.UserRepository) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile/:id", m.Handler.ByID)

	auth := rg.Group("/profile")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/update", m.Handler.Update)
		auth.PUT("/add-education", m.Handler.AddEducation)
		auth.PUT("/update-education/:eduId", m.Handler.UpdateEducation)
		auth.DELETE("/delete-education/:eduId", m.Handler.DeleteEducation)
		auth.PUT("/add-project", m.Handler.AddProject)
		auth.PUT("/update-project/:projId", m.Handler.UpdateProject)
		auth.DELETE("/delete-project/:projId", m.Handler.DeleteProject)
	}
}

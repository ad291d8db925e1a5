package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/connectify-hq/connectify/internal/application"
	"github.com/connectify-hq/connectify/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Posts  *application.PostService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, posts *application.PostService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Posts: posts, Logger: logger}
}

// Search GET /api/users/search?name=
func (h *UserHandler) Search(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.JSON(c, http.StatusOK, []any{})
		return
	}
	results, err := h.Users.SearchUsers(c.Request.Context(), name, 20)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("user search failed")
		}
		response.Message(c, http.StatusInternalServerError, "Error searching users")
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// PublicProfile GET /api/users/:id/public — profile plus the user's posts.
func (h *UserHandler) PublicProfile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Param("id"))
	if errors.Is(err, application.ErrUserNotFound) {
		response.Message(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("public profile fetch failed")
		}
		response.Message(c, http.StatusInternalServerError, "Error fetching public profile")
		return
	}
	posts, err := h.Posts.ListByUser(u.ID)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("public profile posts fetch failed")
		}
		response.Message(c, http.StatusInternalServerError, "Error fetching public profile")
		return
	}
	// Limited projection: contact details (email, phone) and account
	// timestamps stay private on this view.
	pub := gin.H{
		"_id":        u.ID,
		"name":       u.Name,
		"profilePic": u.ProfilePic,
		"bio":        u.Bio,
		"location":   u.Location,
		"website":    u.Website,
		"education":  u.Education,
		"projects":   u.Projects,
	}
	response.JSON(c, http.StatusOK, gin.H{"user": pub, "posts": posts})
}

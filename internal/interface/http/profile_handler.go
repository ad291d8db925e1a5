package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/connectify-hq/connectify/internal/application"
	"github.com/connectify-hq/connectify/internal/interface/middleware"
	"github.com/connectify-hq/connectify/pkg/response"
)

type ProfileHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.UserService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

func (h *ProfileHandler) fail(c *gin.Context, err error, logMsg, userMsg string) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrEducationNotFound):
		response.Message(c, http.StatusNotFound, "Education not found")
	case errors.Is(err, application.ErrProjectNotFound):
		response.Message(c, http.StatusNotFound, "Project not found")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error(logMsg)
		}
		response.Message(c, http.StatusInternalServerError, userMsg)
	}
}

// Me GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		h.fail(c, err, "fetch own profile failed", "Error fetching profile")
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// ByID GET /api/profile/:id — public profile view.
func (h *ProfileHandler) ByID(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Param("id"))
	if err != nil {
		h.fail(c, err, "fetch profile failed", "Error fetching profile")
		return
	}
	response.JSON(c, http.StatusOK, u)
}

// Update PUT /api/profile/update — typed partial update; identity and
// credential fields are not representable in the payload.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req application.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid update payload")
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req)
	if err != nil {
		h.fail(c, err, "update profile failed", "Error updating profile")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}

// AddEducation PUT /api/profile/add-education
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req application.EducationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid education payload")
		return
	}
	u, err := h.Svc.AddEducation(c.GetString(middleware.CtxUserIDKey), req)
	if err != nil {
		h.fail(c, err, "add education failed", "Error adding education")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Education added successfully", "user": u})
}

// UpdateEducation PUT /api/profile/update-education/:eduId
func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	var req application.EducationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid education payload")
		return
	}
	u, err := h.Svc.UpdateEducation(c.GetString(middleware.CtxUserIDKey), c.Param("eduId"), req)
	if err != nil {
		h.fail(c, err, "update education failed", "Error updating education")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Education updated successfully", "user": u})
}

// DeleteEducation DELETE /api/profile/delete-education/:eduId
func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	u, err := h.Svc.DeleteEducation(c.GetString(middleware.CtxUserIDKey), c.Param("eduId"))
	if err != nil {
		h.fail(c, err, "delete education failed", "Error deleting education")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Education deleted successfully", "user": u})
}

// AddProject PUT /api/profile/add-project
func (h *ProfileHandler) AddProject(c *gin.Context) {
	var req application.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid project payload")
		return
	}
	u, err := h.Svc.AddProject(c.GetString(middleware.CtxUserIDKey), req)
	if err != nil {
		h.fail(c, err, "add project failed", "Error adding project")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Project added successfully", "user": u})
}

// UpdateProject PUT /api/profile/update-project/:projId
func (h *ProfileHandler) UpdateProject(c *gin.Context) {
	var req application.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid project payload")
		return
	}
	u, err := h.Svc.UpdateProject(c.GetString(middleware.CtxUserIDKey), c.Param("projId"), req)
	if err != nil {
		h.fail(c, err, "update project failed", "Error updating project")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Project updated successfully", "user": u})
}

// DeleteProject DELETE /api/profile/delete-project/:projId
func (h *ProfileHandler) DeleteProject(c *gin.Context) {
	u, err := h.Svc.DeleteProject(c.GetString(middleware.CtxUserIDKey), c.Param("projId"))
	if err != nil {
		h.fail(c, err, "delete project failed", "Error deleting project")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Project deleted successfully", "user": u})
}

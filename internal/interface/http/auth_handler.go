package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/connectify-hq/connectify/internal/application"
	"github.com/connectify-hq/connectify/internal/interface/middleware"
	"github.com/connectify-hq/connectify/pkg/helpers"
	"github.com/connectify-hq/connectify/pkg/response"
	"github.com/connectify-hq/connectify/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.UserService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.UserService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger}
}

// Email and password carry no format validation here: the service trims
// and lowercases the email before any lookup, so a value like "A@X.com "
// must reach it intact, and no password length is imposed on signup.
type signupRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	SecurityQuestion string `json:"securityQuestion"`
	SecurityAnswer   string `json:"securityAnswer"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if h.Logger != nil {
			h.Logger.WithField("details", validation.ToDetails(err)).Debug("signup payload rejected")
		}
		response.Message(c, http.StatusBadRequest, "Invalid signup payload")
		return
	}
	_, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		response.Message(c, http.StatusBadRequest, "Email already exists")
	case errors.Is(err, application.ErrMissingSecurity):
		response.Message(c, http.StatusBadRequest, "Security question and answer are required")
	case errors.Is(err, application.ErrInvalidQuestion):
		response.Message(c, http.StatusBadRequest, "Invalid security question")
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("signup failed")
		}
		response.Message(c, http.StatusInternalServerError, "Signup failed")
	default:
		response.Message(c, http.StatusCreated, "User registered successfully")
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	token, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Message(c, http.StatusBadRequest, "Invalid credentials")
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Message(c, http.StatusInternalServerError, "Login failed")
	default:
		response.JSON(c, http.StatusOK, gin.H{"token": token, "user": u})
	}
}

type findQuestionRequest struct {
	Email string `json:"email" binding:"required"`
}

// FindQuestion POST /api/auth/find-question — recovery step one.
func (h *AuthHandler) FindQuestion(c *gin.Context) {
	var req findQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email is required")
		return
	}
	question, err := h.Svc.FindQuestion(req.Email)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("find question failed")
		}
		response.Message(c, http.StatusInternalServerError, "Error fetching question")
	default:
		response.JSON(c, http.StatusOK, gin.H{"question": question})
	}
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword POST /api/auth/reset-password — recovery step two.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Email, answer and new password are required")
		return
	}
	err := h.Svc.ResetPassword(c.Request.Context(), req.Email, req.Answer, req.NewPassword)
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Message(c, http.StatusNotFound, "User not found")
	case errors.Is(err, application.ErrIncorrectAnswer):
		response.Message(c, http.StatusBadRequest, "Incorrect security answer")
	case err != nil:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("reset password failed")
		}
		response.Message(c, http.StatusInternalServerError, "Error resetting password")
	default:
		response.Message(c, http.StatusOK, "Password reset successful")
	}
}

// Verify GET /api/auth/verify — decodes the presented assertion without
// touching the store. Uniquely returns {valid} instead of {message}.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		response.JSON(c, http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	claims, err := h.JWT.Verify(token)
	if err != nil {
		response.JSON(c, http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	// Echo the decoded claim as-is, registered fields (exp, iat) included.
	response.JSON(c, http.StatusOK, gin.H{"valid": true, "user": claims})
}

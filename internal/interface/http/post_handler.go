package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/connectify-hq/connectify/internal/application"
	"github.com/connectify-hq/connectify/internal/interface/middleware"
	"github.com/connectify-hq/connectify/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

func callerID(c *gin.Context) primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserIDKey))
	return oid
}

func (h *PostHandler) fail(c *gin.Context, err error, logMsg, userMsg string) {
	switch {
	case errors.Is(err, application.ErrPostNotFound):
		response.Message(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, application.ErrNotPostOwner):
		response.Message(c, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, application.ErrEmptyPost):
		response.Message(c, http.StatusBadRequest, "Post cannot be empty")
	case errors.Is(err, application.ErrEmptyComment):
		response.Message(c, http.StatusBadRequest, "Comment cannot be empty")
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error(logMsg)
		}
		response.Message(c, http.StatusInternalServerError, userMsg)
	}
}

type createPostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid post payload")
		return
	}
	post, err := h.Svc.Create(c.Request.Context(), application.CreatePostInput{
		UserID:         callerID(c),
		UserName:       c.GetString(middleware.CtxUserNameKey),
		UserProfilePic: c.GetString(middleware.CtxProfilePicKey),
		Content:        req.Content,
		Image:          req.Image,
	})
	if err != nil {
		h.fail(c, err, "create post failed", "Error creating post")
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

// List GET /api/posts — public feed, newest first.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List()
	if err != nil {
		h.fail(c, err, "list posts failed", "Error fetching posts")
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// MyPosts GET /api/posts/my-posts
func (h *PostHandler) MyPosts(c *gin.Context) {
	posts, err := h.Svc.ListByUser(callerID(c))
	if err != nil {
		h.fail(c, err, "list own posts failed", "Error fetching user's posts")
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// Search GET /api/posts/search/:keyword
func (h *PostHandler) Search(c *gin.Context) {
	posts, err := h.Svc.Search(c.Request.Context(), c.Param("keyword"))
	if err != nil {
		h.fail(c, err, "post search failed", "Error fetching search results")
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// Trending GET /api/posts/trending
func (h *PostHandler) Trending(c *gin.Context) {
	trending, err := h.Svc.Trending(c.Request.Context())
	if err != nil {
		h.fail(c, err, "trending aggregation failed", "Error fetching trending hashtags")
		return
	}
	response.JSON(c, http.StatusOK, trending)
}

// Get GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.Svc.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err, "fetch post failed", "Error fetching post")
		return
	}
	response.JSON(c, http.StatusOK, post)
}

type editPostRequest struct {
	Content string `json:"content"`
}

// Edit PUT /api/posts/:id — owner only; hashtags recomputed.
func (h *PostHandler) Edit(c *gin.Context) {
	var req editPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid post payload")
		return
	}
	post, err := h.Svc.Edit(c.Request.Context(), c.Param("id"), callerID(c), req.Content)
	if err != nil {
		h.fail(c, err, "edit post failed", "Error editing post")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Post updated", "post": post})
}

// Delete DELETE /api/posts/:id — owner only.
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		h.fail(c, err, "delete post failed", "Error deleting post")
		return
	}
	response.Message(c, http.StatusOK, "Post deleted successfully")
}

// Like POST /api/posts/:id/like — idempotent-pair toggle.
func (h *PostHandler) Like(c *gin.Context) {
	likes, err := h.Svc.ToggleLike(c.Param("id"), callerID(c))
	if err != nil {
		h.fail(c, err, "toggle like failed", "Error liking post")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"likes": likes, "message": "Toggled like successfully"})
}

type commentRequest struct {
	Text string `json:"text"`
}

// Comment POST /api/posts/:id/comment
func (h *PostHandler) Comment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Message(c, http.StatusBadRequest, "Comment cannot be empty")
		return
	}
	comment, err := h.Svc.AddComment(c.Param("id"), callerID(c), c.GetString(middleware.CtxUserNameKey), req.Text)
	if err != nil {
		h.fail(c, err, "add comment failed", "Error adding comment")
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{"message": "Comment added", "comment": comment})
}

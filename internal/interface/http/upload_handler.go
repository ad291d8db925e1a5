package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/connectify-hq/connectify/pkg/helpers"
	"github.com/connectify-hq/connectify/pkg/response"
)

// UploadHandler streams multipart images to object storage and hands back
// the hosted URL. The rest of the API only ever stores URLs.
type UploadHandler struct {
	GCS    *storage.Client
	Bucket string
	Folder string
	Logger *logrus.Logger
}

func NewUploadHandler(gcs *storage.Client, bucket, folder string, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{GCS: gcs, Bucket: bucket, Folder: folder, Logger: logger}
}

// Upload POST /api/upload — multipart field "image".
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Message(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if h.GCS == nil || h.Bucket == "" {
		response.Message(c, http.StatusInternalServerError, "Upload failed")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Message(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	defer func() { _ = f.Close() }()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	objectPath := filepath.ToSlash(filepath.Join(h.Folder, uuid.NewString()+ext))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := helpers.UploadImageToGCS(c.Request.Context(), h.GCS, h.Bucket, objectPath, contentType, f)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("object", objectPath).Error("gcs upload failed")
		}
		response.Message(c, http.StatusInternalServerError, "Upload failed")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"url": url})
}

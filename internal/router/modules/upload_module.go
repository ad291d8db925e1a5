package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/connectify-hq/connectify/internal/interface/http"
)

// UploadModule registers the media upload endpoint. It is unauthenticated,
// matching the hosted-URL handoff the clients expect.
type UploadModule struct {
	Handler *handlers.UploadHandler
}

func NewUploadModule(h *handlers.UploadHandler) *UploadModule {
	return &UploadModule{Handler: h}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", m.Handler.Upload)
}

package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/pkg/helpers"
	"github.com/bhbank/credit-backend/pkg/response"
)

// maxDocumentSize caps a single wizard document upload.
const maxDocumentSize = 10 << 20 // 10 MiB

var allowedDocumentTypes = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// DocumentHandler uploads wizard supporting documents to object storage and
// returns the public URL the draft stores in its documents section.
type DocumentHandler struct {
	Client *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewDocumentHandler(client *storage.Client, bucket string, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{Client: client, Bucket: bucket, Logger: logger}
}

// Upload POST /api/documents (auth required, multipart field "file")
func (h *DocumentHandler) Upload(c *gin.Context) {
	if h.Client == nil || h.Bucket == "" {
		response.Error[any](c, http.StatusServiceUnavailable, "document storage not configured", nil)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file field is required", nil)
		return
	}
	if fh.Size > maxDocumentSize {
		response.Error[any](c, http.StatusBadRequest, "file exceeds 10MB limit", nil)
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedDocumentTypes[ext] {
		response.Error[any](c, http.StatusBadRequest, "unsupported file type", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	objectPath := "documents/" + uuid.New().String() + ext
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := helpers.UploadObject(c.Request.Context(), h.Client, h.Bucket, objectPath, contentType, f)
	if err != nil {
		h.Logger.WithError(err).WithField("object", objectPath).Error("document upload failed")
		response.Error[any](c, http.StatusBadGateway, "storage upload failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url}, "document uploaded", nil)
}

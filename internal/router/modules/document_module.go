package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhbank/credit-backend/internal/container"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// DocumentModule wires the wizard document upload.
type DocumentModule struct {
	Handler *handlers.DocumentHandler
	JWT     *helpers.JWTManager
}

func NewDocumentModule(h *handlers.DocumentHandler, jwt *helpers.JWTManager) *DocumentModule {
	return &DocumentModule{Handler: h, JWT: jwt}
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/documents", m.Handler.Upload)
	}
}

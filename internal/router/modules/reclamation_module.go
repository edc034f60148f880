package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhbank/credit-backend/internal/container"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// ReclamationModule wires the public contact form and the admin reply routes.
type ReclamationModule struct {
	Handler *handlers.ReclamationHandler
	JWT     *helpers.JWTManager
}

func NewReclamationModule(h *handlers.ReclamationHandler, jwt *helpers.JWTManager) *ReclamationModule {
	return &ReclamationModule{Handler: h, JWT: jwt}
}

func (m *ReclamationModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/reclamations", createLimiter, m.Handler.Create)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/reclamations", m.Handler.List)
		admin.PUT("/reclamations/:id/reply", m.Handler.Reply)
	}
}

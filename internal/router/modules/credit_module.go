package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhbank/credit-backend/internal/container"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// CreditModule wires the application wizard and the admin review routes.
// Customer: POST /api/credits, GET /api/credits/cin/:cin
// Admin: GET /api/credits, GET /api/credits/search, GET /api/credits/:id,
// PUT /api/credits/:id/status
type CreditModule struct {
	Handler *handlers.CreditHandler
	JWT     *helpers.JWTManager
}

func NewCreditModule(h *handlers.CreditHandler, jwt *helpers.JWTManager) *CreditModule {
	return &CreditModule{Handler: h, JWT: jwt}
}

func (m *CreditModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/credits", m.Handler.Submit)
		auth.GET("/credits/cin/:cin", m.Handler.ListByCIN)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/credits", m.Handler.List)
		admin.GET("/credits/search", m.Handler.Search)
		admin.GET("/credits/:id", m.Handler.Get)
		admin.PUT("/credits/:id/status", m.Handler.SetStatus)
	}
}

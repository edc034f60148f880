package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhbank/credit-backend/internal/container"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// ChatModule wires the public support widget and the admin transcript view.
type ChatModule struct {
	Handler *handlers.ChatHandler
	JWT     *helpers.JWTManager
}

func NewChatModule(h *handlers.ChatHandler, jwt *helpers.JWTManager) *ChatModule {
	return &ChatModule{Handler: h, JWT: jwt}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	widgetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/chat/ask", widgetLimiter, m.Handler.Ask)
	rg.POST("/chat", widgetLimiter, m.Handler.Record)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.GET("/chat", m.Handler.List)
		admin.POST("/chat/corpus", m.Handler.AddQAPair)
	}
}

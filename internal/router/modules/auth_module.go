package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bhbank/credit-backend/internal/container"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/helpers"
)

// AuthModule wires registration, login and profile routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/profile
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Tight per-IP limits on the credential endpoints; the per-CIN window
	// inside the service handles targeted guessing.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/profile", m.Handler.Profile)
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/application"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/internal/interface/middleware"
	"github.com/bhbank/credit-backend/pkg/response"
	"github.com/bhbank/credit-backend/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	CIN      string `json:"cin" binding:"required,cin"`
	RIB      string `json:"rib" binding:"required,rib"`
}

type loginRequest struct {
	CIN string `json:"cin" binding:"required,cin"`
	RIB string `json:"rib" binding:"required,rib"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.CIN, req.RIB)
	switch {
	case errors.Is(err, repo.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "email already registered", nil)
		return
	case errors.Is(err, repo.ErrDuplicateCIN):
		response.Error[any](c, http.StatusConflict, "cin already registered", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token": sess.Token,
		"user":  toUserView(sess.User),
	}, "registered", map[string]any{"expires_at": sess.ExpiresAt})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	sess, err := h.Svc.Login(c.Request.Context(), req.CIN, req.RIB)
	switch {
	case errors.Is(err, application.ErrTooManyAttempts):
		response.Error[any](c, http.StatusTooManyRequests, "too many failed attempts, try again later", nil)
		return
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": sess.Token,
		"user":  toUserView(sess.User),
	}, "login successful", map[string]any{"expires_at": sess.ExpiresAt})
}

// Profile GET /api/auth/profile (auth required)
func (h *AuthHandler) Profile(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserView(u), "profile", nil)
}

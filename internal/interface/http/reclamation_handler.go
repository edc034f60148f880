package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/application"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/response"
	"github.com/bhbank/credit-backend/pkg/validation"
)

type ReclamationHandler struct {
	Svc    *application.ReclamationService
	Logger *logrus.Logger
}

func NewReclamationHandler(svc *application.ReclamationService, logger *logrus.Logger) *ReclamationHandler {
	return &ReclamationHandler{Svc: svc, Logger: logger}
}

type createReclamationRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

type replyReclamationRequest struct {
	Response string `json:"response" binding:"required"`
}

// Create POST /api/reclamations (public contact form)
func (h *ReclamationHandler) Create(c *gin.Context) {
	var req createReclamationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	r, err := h.Svc.Submit(c.Request.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		h.Logger.WithError(err).Error("reclamation create failed")
		response.Error[any](c, http.StatusInternalServerError, "submission failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, toReclamationView(r), "reclamation received", nil)
}

// List GET /api/reclamations?search= (admin)
func (h *ReclamationHandler) List(c *gin.Context) {
	recs, err := h.Svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.Logger.WithError(err).Error("reclamation list failed")
		response.Error[any](c, http.StatusInternalServerError, "listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toReclamationViews(recs), "reclamations", map[string]any{"count": len(recs)})
}

// Reply PUT /api/reclamations/:id/reply (admin)
func (h *ReclamationHandler) Reply(c *gin.Context) {
	var req replyReclamationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	r, err := h.Svc.Reply(c.Request.Context(), c.Param("id"), req.Response)
	switch {
	case errors.Is(err, application.ErrEmptyResponse):
		response.Error[any](c, http.StatusBadRequest, "response text is required", nil)
		return
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "reclamation not found", nil)
		return
	case errors.Is(err, repo.ErrConflict):
		response.Error[any](c, http.StatusConflict, "reclamation already answered", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("reclamation reply failed")
		response.Error[any](c, http.StatusInternalServerError, "reply failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toReclamationView(r), "reply recorded", nil)
}

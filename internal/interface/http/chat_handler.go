package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/application"
	"github.com/bhbank/credit-backend/pkg/response"
	"github.com/bhbank/credit-backend/pkg/validation"
)

type ChatHandler struct {
	Svc    *application.ChatService
	Logger *logrus.Logger
}

func NewChatHandler(svc *application.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

type recordExchangeRequest struct {
	Question string     `json:"question" binding:"required"`
	Answer   string     `json:"answer" binding:"required"`
	Date     *time.Time `json:"date"`
}

type addQARequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// Ask POST /api/chat/ask (public widget)
func (h *ChatHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	m, err := h.Svc.Ask(c.Request.Context(), req.Question)
	switch {
	case errors.Is(err, application.ErrEmptyQuestion):
		response.Error[any](c, http.StatusBadRequest, "question text is required", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("chat ask failed")
		response.Error[any](c, http.StatusInternalServerError, "chat unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"answer": m.Answer}, "answer", nil)
}

// Record POST /api/chat: append an exchange produced by the external
// conversational widget.
func (h *ChatHandler) Record(c *gin.Context) {
	var req recordExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	m, err := h.Svc.RecordExchange(c.Request.Context(), req.Question, req.Answer, req.Date)
	if err != nil {
		h.Logger.WithError(err).Error("chat record failed")
		response.Error[any](c, http.StatusInternalServerError, "record failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": m.ID}, "exchange recorded", nil)
}

// List GET /api/chat?limit=&offset= (admin transcript view)
func (h *ChatHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.Svc.Transcript(c.Request.Context(), limit, offset)
	if err != nil {
		h.Logger.WithError(err).Error("chat list failed")
		response.Error[any](c, http.StatusInternalServerError, "listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toChatViews(msgs), "transcript", map[string]any{"count": len(msgs)})
}

// AddQAPair POST /api/chat/corpus (admin) extends the retrieval corpus.
func (h *ChatHandler) AddQAPair(c *gin.Context) {
	var req addQARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	q, err := h.Svc.AddQAPair(c.Request.Context(), req.Question, req.Answer)
	if err != nil {
		h.Logger.WithError(err).Error("corpus add failed")
		response.Error[any](c, http.StatusInternalServerError, "corpus update failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": q.ID}, "corpus entry added", nil)
}

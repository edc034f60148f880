package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/config"
	"github.com/bhbank/credit-backend/internal/application"
	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/response"
	"github.com/bhbank/credit-backend/pkg/validation"
)

// EmailHandler exposes the admin email actions. Approval emails are delivered
// asynchronously: every action here enqueues a job for the email worker, it
// never talks to the mail transport directly.
type EmailHandler struct {
	Svc    *application.CreditService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewEmailHandler(svc *application.CreditService, logger *logrus.Logger, cfg *config.Config) *EmailHandler {
	return &EmailHandler{Svc: svc, Logger: logger, Cfg: cfg}
}

type sendApprovalRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
}

// SendApproval POST /api/email/send-approval-email (admin)
func (h *EmailHandler) SendApproval(c *gin.Context) {
	var req sendApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	h.enqueue(c, req.ApplicationID)
}

// ResendContract POST /api/email/resend-contract/:applicationId (admin retry)
func (h *EmailHandler) ResendContract(c *gin.Context) {
	h.enqueue(c, c.Param("applicationId"))
}

func (h *EmailHandler) enqueue(c *gin.Context, applicationID string) {
	if h.Cfg != nil && !h.Cfg.MailSendEnabled {
		response.Success[any](c, http.StatusOK, gin.H{"success": false, "disabled": true}, "email sending disabled", nil)
		return
	}

	a, err := h.Svc.ResendApprovalEmail(c.Request.Context(), applicationID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "application not found", nil)
		return
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusBadRequest, "application is not approved", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("application_id", applicationID).Error("approval email enqueue failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to enqueue approval email", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success":       true,
		"applicationId": a.ID,
	}, "approval email enqueued", nil)
}

type trackContractRequest struct {
	ContractStatus entity.ContractStatus `json:"contractStatus" binding:"required,oneof=sent viewed signed rejected"`
}

// TrackContract PUT /api/email/track-contract/:applicationId
func (h *EmailHandler) TrackContract(c *gin.Context) {
	var req trackContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id := c.Param("applicationId")
	err := h.Svc.TrackContract(c.Request.Context(), id, req.ContractStatus)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "application not found", nil)
		return
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusBadRequest, "unknown contract status", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("application_id", id).Error("contract tracking failed")
		response.Error[any](c, http.StatusInternalServerError, "tracking update failed", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "contract status updated", nil)
}

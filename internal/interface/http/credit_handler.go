package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bhbank/credit-backend/internal/application"
	"github.com/bhbank/credit-backend/internal/domain/entity"
	repo "github.com/bhbank/credit-backend/internal/domain/repository"
	"github.com/bhbank/credit-backend/pkg/response"
	"github.com/bhbank/credit-backend/pkg/validation"
)

type CreditHandler struct {
	Svc    *application.CreditService
	Logger *logrus.Logger
}

func NewCreditHandler(svc *application.CreditService, logger *logrus.Logger) *CreditHandler {
	return &CreditHandler{Svc: svc, Logger: logger}
}

type submitCreditRequest struct {
	CreditType     entity.CreditType       `json:"creditType" binding:"required,oneof=CONSOMMATION AMENAGEMENT ORDINATEUR"`
	CreditAmount   float64                 `json:"creditAmount" binding:"required,gt=0"`
	Duration       int                     `json:"duration" binding:"required,gt=0"`
	MonthlyPayment float64                 `json:"monthlyPayment"`
	PersonalInfo   entity.PersonalInfo     `json:"personalInfo" binding:"required"`
	Professional   entity.ProfessionalInfo `json:"professionalInfo" binding:"required"`
	FinancialInfo  entity.FinancialInfo    `json:"financialInfo" binding:"required"`
	AgencyInfo     entity.AgencyInfo       `json:"agencyInfo" binding:"required"`
	Documents      entity.Documents        `json:"documents"`
}

type setStatusRequest struct {
	Status          entity.CreditStatus `json:"status" binding:"required"`
	RejectionReason string              `json:"rejectionReason"`
}

// Submit POST /api/credits (auth required)
func (h *CreditHandler) Submit(c *gin.Context) {
	var req submitCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	draft := &entity.CreditApplication{
		CreditType:     req.CreditType,
		CreditAmount:   req.CreditAmount,
		Duration:       req.Duration,
		MonthlyPayment: req.MonthlyPayment,
		Personal:       req.PersonalInfo,
		Professional:   req.Professional,
		Financial:      req.FinancialInfo,
		Agency:         req.AgencyInfo,
		Documents:      req.Documents,
	}

	res, err := h.Svc.Submit(c.Request.Context(), draft)
	switch {
	case errors.Is(err, application.ErrInvalidDraft), errors.Is(err, application.ErrMissingDocuments):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("credit submission failed")
		response.Error[any](c, http.StatusInternalServerError, "submission failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"application": toCreditView(res.Application),
		"reference":   res.Reference,
	}, "application submitted", nil)
}

// List GET /api/credits?status=&search= (admin)
func (h *CreditHandler) List(c *gin.Context) {
	f := repo.CreditFilter{
		Status: entity.CreditStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if f.Status != "" && f.Status != entity.StatusPending && f.Status != entity.StatusApproved && f.Status != entity.StatusRejected {
		response.Error[any](c, http.StatusBadRequest, "unknown status filter", nil)
		return
	}

	apps, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		h.Logger.WithError(err).Error("credit list failed")
		response.Error[any](c, http.StatusInternalServerError, "listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCreditViews(apps), "applications", map[string]any{"count": len(apps)})
}

// Get GET /api/credits/:id (admin)
func (h *CreditHandler) Get(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "application not found", nil)
			return
		}
		h.Logger.WithError(err).Error("credit get failed")
		response.Error[any](c, http.StatusInternalServerError, "lookup failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCreditView(a), "application", nil)
}

// ListByCIN GET /api/credits/cin/:cin (auth required)
func (h *CreditHandler) ListByCIN(c *gin.Context) {
	apps, err := h.Svc.ListByCIN(c.Request.Context(), c.Param("cin"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "no applications for this cin", nil)
			return
		}
		h.Logger.WithError(err).Error("credit list by cin failed")
		response.Error[any](c, http.StatusInternalServerError, "listing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toCreditViews(apps), "applications", map[string]any{"count": len(apps)})
}

// SetStatus PUT /api/credits/:id/status (admin)
func (h *CreditHandler) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	upd, err := h.Svc.SetStatus(c.Request.Context(), c.Param("id"), req.Status, req.RejectionReason)
	switch {
	case errors.Is(err, application.ErrInvalidTransition):
		response.Error[any](c, http.StatusBadRequest, "status must be approved or rejected", nil)
		return
	case errors.Is(err, application.ErrMissingReason):
		response.Error[any](c, http.StatusBadRequest, "rejection reason is required", nil)
		return
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "application not found", nil)
		return
	case errors.Is(err, repo.ErrConflict):
		response.Error[any](c, http.StatusConflict, "application already processed", nil)
		return
	case err != nil:
		h.Logger.WithError(err).Error("credit status update failed")
		response.Error[any](c, http.StatusInternalServerError, "status update failed", nil)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"application": toCreditView(upd.Application),
		"emailSent":   upd.EmailQueued,
	}, "status updated", nil)
}

// Search GET /api/credits/search?q=&size= (admin, Elasticsearch-backed)
func (h *CreditHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.SearchApplications(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("credit search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
	"emitrack/internal/services"
)

// ModificationHandler handles loan modification requests.
type ModificationHandler struct {
	modificationService services.ModificationServicer
	auditService        services.AuditServicer
}

// NewModificationHandler creates a new ModificationHandler.
func NewModificationHandler(modificationService services.ModificationServicer, auditService services.AuditServicer) *ModificationHandler {
	return &ModificationHandler{modificationService: modificationService, auditService: auditService}
}

// PrepaymentRequest represents the request payload for a lump-sum prepayment.
type PrepaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	AtSequence int             `json:"at_sequence" binding:"required,gt=0"`
	// ReduceTenure keeps the EMI and shortens the loan; when false the tenure
	// is kept and the EMI drops.
	ReduceTenure bool `json:"reduce_tenure"`
}

// StepUpRequest represents the request payload for an EMI step-up. Exactly
// one of amount or percentage must be set.
type StepUpRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	Percentage   *decimal.Decimal `json:"percentage"`
	FromSequence int              `json:"from_sequence" binding:"required,gt=0"`
}

// InterestChangeRequest represents the request payload for an interest-rate
// change. An empty affected list applies the change to every open
// installment.
type InterestChangeRequest struct {
	NewRate           decimal.Decimal `json:"new_interest_rate" binding:"required"`
	AffectedSequences []int           `json:"affected_installments"`
}

// ListModificationsQuery narrows the modification history listing.
type ListModificationsQuery struct {
	Kind string `form:"kind" binding:"omitempty,modification_kind"`
}

// ApplyPrepayment handles recording a lump-sum prepayment.
// @Summary     Apply a prepayment
// @Description Record a lump-sum payment at the given installment, then either reduce the EMI or shorten the tenure
// @Tags        modifications
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Loan ID"
// @Param       request body PrepaymentRequest true "Prepayment details"
// @Success     200 {object} services.ModificationResult "Updated loan and schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     422 {object} ErrorResponse "Tenure not reducible"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/prepayment [post]
func (h *ModificationHandler) ApplyPrepayment(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PrepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.modificationService.ApplyPrepayment(loanID, req.Amount, req.AtSequence, req.ReduceTenure)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("APPLY_PREPAYMENT", "loan", loanID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount.String(), "at_sequence": req.AtSequence, "reduce_tenure": req.ReduceTenure})

	c.JSON(http.StatusOK, result)
}

// ApplyStepUp handles raising the EMI from a given installment onward.
// @Summary     Apply an EMI step-up
// @Description Raise the EMI for every open installment from the given sequence, by a flat amount or a percentage
// @Tags        modifications
// @Accept      json
// @Produce     json
// @Param       id      path string        true "Loan ID"
// @Param       request body StepUpRequest true "Step-up details"
// @Success     200 {object} services.ModificationResult "Updated loan and schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/step-up [post]
func (h *ModificationHandler) ApplyStepUp(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StepUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.modificationService.ApplyStepUp(loanID, req.Amount, req.Percentage, req.FromSequence)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("APPLY_STEP_UP", "loan", loanID, c.ClientIP(),
		map[string]interface{}{"from_sequence": req.FromSequence})

	c.JSON(http.StatusOK, result)
}

// ChangeInterestRate handles repricing the loan at a new rate.
// @Summary     Change the interest rate
// @Description Reprice open installments at a new annual rate, optionally limited to nominated sequence numbers
// @Tags        modifications
// @Accept      json
// @Produce     json
// @Param       id      path string                true "Loan ID"
// @Param       request body InterestChangeRequest true "New rate and affected installments"
// @Success     200 {object} services.ModificationResult "Updated loan and schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/interest-rate [post]
func (h *ModificationHandler) ChangeInterestRate(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InterestChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.modificationService.ChangeInterestRate(loanID, req.NewRate, req.AffectedSequences)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CHANGE_INTEREST_RATE", "loan", loanID, c.ClientIP(),
		map[string]interface{}{"new_interest_rate": req.NewRate.String()})

	c.JSON(http.StatusOK, result)
}

// ListModifications handles listing a loan's modification history.
// @Summary     List modifications
// @Description Get the loan's modification history, newest first
// @Tags        modifications
// @Produce     json
// @Param       id        path  string true  "Loan ID"
// @Param       kind      query string false "Filter by kind (prepayment/stepup/interest_change)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Modification] "Paginated modifications"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/modifications [get]
func (h *ModificationHandler) ListModifications(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter ListModificationsQuery
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid kind"))
		return
	}
	var kind *models.ModificationKind
	if filter.Kind != "" {
		k := models.ModificationKind(filter.Kind)
		kind = &k
	}

	modifications, err := h.modificationService.ListModifications(loanID, kind, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, modifications)
}

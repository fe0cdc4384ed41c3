package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
	"emitrack/internal/services"
)

// LoanHandler handles loan-related requests.
type LoanHandler struct {
	loanService  services.LoanServicer
	auditService services.AuditServicer
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanService services.LoanServicer, auditService services.AuditServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService, auditService: auditService}
}

// CreateLoanRequest represents the request payload for creating a loan.
type CreateLoanRequest struct {
	Name               string              `json:"name" binding:"required,min=1,max=100"`
	Category           models.LoanCategory `json:"category" binding:"required,loan_category"`
	Principal          decimal.Decimal     `json:"principal" binding:"required"`
	AnnualInterestRate decimal.Decimal     `json:"annual_interest_rate"`
	TenureMonths       int                 `json:"tenure_months" binding:"required,gt=0"`
	LoanStartDate      time.Time           `json:"loan_start_date" binding:"required"`
	EMIStartDate       *time.Time          `json:"emi_start_date"`
}

// UpdateLoanRequest represents the request payload for updating a loan.
// Omitted fields are left unchanged.
type UpdateLoanRequest struct {
	Name               *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Category           *models.LoanCategory `json:"category" binding:"omitempty,loan_category"`
	Principal          *decimal.Decimal     `json:"principal"`
	AnnualInterestRate *decimal.Decimal     `json:"annual_interest_rate"`
	TenureMonths       *int                 `json:"tenure_months" binding:"omitempty,gt=0"`
	LoanStartDate      *time.Time           `json:"loan_start_date"`
	EMIStartDate       *time.Time           `json:"emi_start_date"`
}

// CreateLoan handles the creation of a new loan.
// @Summary     Create a loan
// @Description Create a new loan; the EMI amount is derived from the terms
// @Tags        loans
// @Accept      json
// @Produce     json
// @Param       request body CreateLoanRequest true "Loan terms"
// @Success     201 {object} models.Loan "Loan created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [post]
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.CreateLoan(services.LoanInput{
		Name:               req.Name,
		Category:           req.Category,
		Principal:          req.Principal,
		AnnualInterestRate: req.AnnualInterestRate,
		TenureMonths:       req.TenureMonths,
		LoanStartDate:      req.LoanStartDate,
		EMIStartDate:       req.EMIStartDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("CREATE_LOAN", "loan", loan.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "principal": req.Principal.String(), "tenure_months": req.TenureMonths})

	c.JSON(http.StatusCreated, gin.H{"loan": loan})
}

// GetLoans handles listing loans.
// @Summary     Get loans
// @Description Get a paginated list of loans
// @Tags        loans
// @Accept      json
// @Produce     json
// @Param       category  query string false "Filter by category (home/car/education/personal/other)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Loan] "Paginated loans"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [get]
func (h *LoanHandler) GetLoans(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var category *models.LoanCategory
	if v := c.Query("category"); v != "" {
		cat := models.LoanCategory(v)
		switch cat {
		case models.LoanCategoryHome, models.LoanCategoryCar, models.LoanCategoryEducation,
			models.LoanCategoryPersonal, models.LoanCategoryOther:
			category = &cat
		default:
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category"))
			return
		}
	}

	loans, err := h.loanService.GetLoans(page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, loans)
}

// GetLoan handles fetching a single loan.
// @Summary     Get a loan
// @Description Get a loan by ID
// @Tags        loans
// @Produce     json
// @Param       id path string true "Loan ID"
// @Success     200 {object} models.Loan "Loan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	loan, err := h.loanService.GetLoanByID(loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// UpdateLoan handles updating a loan's terms. Term changes recompute the EMI
// and invalidate the stored schedule.
// @Summary     Update a loan
// @Description Update loan terms; changed terms recompute the EMI and rebuild the schedule
// @Tags        loans
// @Accept      json
// @Produce     json
// @Param       id      path string            true "Loan ID"
// @Param       request body UpdateLoanRequest true "Fields to update"
// @Success     200 {object} models.Loan "Updated loan"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [put]
func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	loan, err := h.loanService.UpdateLoan(loanID, services.LoanUpdate{
		Name:               req.Name,
		Category:           req.Category,
		Principal:          req.Principal,
		AnnualInterestRate: req.AnnualInterestRate,
		TenureMonths:       req.TenureMonths,
		LoanStartDate:      req.LoanStartDate,
		EMIStartDate:       req.EMIStartDate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("UPDATE_LOAN", "loan", loan.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"loan": loan})
}

// DeleteLoan handles deleting a loan and its schedule.
// @Summary     Delete a loan
// @Description Delete a loan together with its installments and modification history
// @Tags        loans
// @Produce     json
// @Param       id path string true "Loan ID"
// @Success     200 {object} map[string]string "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id} [delete]
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.loanService.DeleteLoan(loanID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("DELETE_LOAN", "loan", loanID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Loan deleted"})
}

// GetLoanSummary handles fetching a loan's aggregate figures.
// @Summary     Get loan summary
// @Description Get headline figures for a loan: totals, paid amounts, and the current outstanding principal
// @Tags        loans
// @Produce     json
// @Param       id path string true "Loan ID"
// @Success     200 {object} services.LoanSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/summary [get]
func (h *LoanHandler) GetLoanSummary(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.loanService.GetLoanSummary(loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

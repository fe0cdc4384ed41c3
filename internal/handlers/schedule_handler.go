package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/export"
	"emitrack/internal/services"
)

// ScheduleHandler handles installment schedule requests.
type ScheduleHandler struct {
	scheduleService services.ScheduleServicer
	auditService    services.AuditServicer
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService services.ScheduleServicer, auditService services.AuditServicer) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, auditService: auditService}
}

// ShiftDueDatesRequest represents the request payload for moving a range of
// installment due dates.
type ShiftDueDatesRequest struct {
	StartSequence int       `json:"start_sequence" binding:"required,gt=0"`
	EndSequence   int       `json:"end_sequence" binding:"required,gt=0"`
	NewStartDate  time.Time `json:"new_start_date" binding:"required"`
}

// GetSchedule handles fetching a loan's installment schedule.
// @Summary     Get the EMI schedule
// @Description Get the loan's installment schedule, materializing it on first access and refreshing statuses on later reads
// @Tags        schedule
// @Produce     json
// @Param       id path string true "Loan ID"
// @Success     200 {array} models.Installment "Schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.scheduleService.GetSchedule(loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// RegenerateSchedule handles rebuilding a loan's schedule from its terms.
// @Summary     Regenerate the EMI schedule
// @Description Discard the stored schedule and rebuild it from the loan terms, replaying recorded interest-rate changes
// @Tags        schedule
// @Produce     json
// @Param       id path string true "Loan ID"
// @Success     200 {array} models.Installment "Rebuilt schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule/regenerate [post]
func (h *ScheduleHandler) RegenerateSchedule(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.scheduleService.RegenerateSchedule(loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("REGENERATE_SCHEDULE", "loan", loanID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// MarkInstallmentPaid handles settling a single installment.
// @Summary     Mark an installment paid
// @Description Mark the installment with the given sequence number as paid
// @Tags        schedule
// @Produce     json
// @Param       id  path string true "Loan ID"
// @Param       seq path int    true "Installment sequence number"
// @Success     200 {object} models.Installment "Updated installment"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan or installment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule/{seq}/paid [patch]
func (h *ScheduleHandler) MarkInstallmentPaid(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	seq, err := parseSequence(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	installment, err := h.scheduleService.MarkInstallmentPaid(loanID, seq)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("MARK_INSTALLMENT_PAID", "installment", installment.ID, c.ClientIP(),
		map[string]interface{}{"sequence_number": seq})

	c.JSON(http.StatusOK, gin.H{"installment": installment})
}

// ShiftDueDates handles moving the due dates of a range of installments.
// @Summary     Shift installment due dates
// @Description Move the due dates of installments in a sequence range; the first lands on the new start date and the rest follow monthly
// @Tags        schedule
// @Accept      json
// @Produce     json
// @Param       id      path string               true "Loan ID"
// @Param       request body ShiftDueDatesRequest true "Range and new start date"
// @Success     200 {array} models.Installment "Updated schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan or installment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule/due-dates [patch]
func (h *ScheduleHandler) ShiftDueDates(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ShiftDueDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	schedule, err := h.scheduleService.ShiftDueDates(loanID, req.StartSequence, req.EndSequence, req.NewStartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log("SHIFT_DUE_DATES", "loan", loanID, c.ClientIP(),
		map[string]interface{}{"start_sequence": req.StartSequence, "end_sequence": req.EndSequence})

	c.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

// ExportSchedule handles downloading the schedule as CSV.
// @Summary     Export the EMI schedule
// @Description Download the loan's installment schedule as a CSV file, optionally limited to one calendar year
// @Tags        schedule
// @Produce     text/csv
// @Param       id   path  string true  "Loan ID"
// @Param       year query int    false "Calendar year filter (defaults to the current year)"
// @Success     200 {string} string "CSV payload"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Loan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans/{id}/schedule/export [get]
func (h *ScheduleHandler) ExportSchedule(c *gin.Context) {
	loanID, err := parseLoanID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil || year < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
	}

	schedule, err := h.scheduleService.GetSchedule(loanID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+export.ScheduleFilename(loanID, year)+`"`)
	if err := export.WriteScheduleCSV(c.Writer, schedule, year); err != nil {
		respondWithError(c, err)
		return
	}
}

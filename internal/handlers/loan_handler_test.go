package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
	"emitrack/internal/services"
	"emitrack/internal/testutil"
	"emitrack/internal/uuid"
	"emitrack/internal/validator"
)

// --- mock loan service ---

type mockLoanService struct {
	createLoanFn     func(input services.LoanInput) (*models.Loan, error)
	getLoansFn       func(page pagination.PageRequest, category *models.LoanCategory) (*pagination.PageResponse[models.Loan], error)
	getLoanByIDFn    func(loanID string) (*models.Loan, error)
	updateLoanFn     func(loanID string, update services.LoanUpdate) (*models.Loan, error)
	deleteLoanFn     func(loanID string) error
	getLoanSummaryFn func(loanID string) (*services.LoanSummary, error)
}

func (m *mockLoanService) CreateLoan(input services.LoanInput) (*models.Loan, error) {
	if m.createLoanFn != nil {
		return m.createLoanFn(input)
	}
	return &models.Loan{}, nil
}

func (m *mockLoanService) GetLoans(page pagination.PageRequest, category *models.LoanCategory) (*pagination.PageResponse[models.Loan], error) {
	if m.getLoansFn != nil {
		return m.getLoansFn(page, category)
	}
	resp := pagination.NewPageResponse([]models.Loan{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLoanService) GetLoanByID(loanID string) (*models.Loan, error) {
	if m.getLoanByIDFn != nil {
		return m.getLoanByIDFn(loanID)
	}
	return &models.Loan{}, nil
}

func (m *mockLoanService) UpdateLoan(loanID string, update services.LoanUpdate) (*models.Loan, error) {
	if m.updateLoanFn != nil {
		return m.updateLoanFn(loanID, update)
	}
	return &models.Loan{}, nil
}

func (m *mockLoanService) DeleteLoan(loanID string) error {
	if m.deleteLoanFn != nil {
		return m.deleteLoanFn(loanID)
	}
	return nil
}

func (m *mockLoanService) GetLoanSummary(loanID string) (*services.LoanSummary, error) {
	if m.getLoanSummaryFn != nil {
		return m.getLoanSummaryFn(loanID)
	}
	return &services.LoanSummary{}, nil
}

var _ services.LoanServicer = (*mockLoanService)(nil)

type mockAuditService struct{}

func (m *mockAuditService) Log(_, _, _, _ string, _ map[string]any) {}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupLoanRouter(handler *LoanHandler) *gin.Engine {
	r := gin.New()
	r.POST("/loans", handler.CreateLoan)
	r.GET("/loans", handler.GetLoans)
	r.GET("/loans/:id", handler.GetLoan)
	r.PUT("/loans/:id", handler.UpdateLoan)
	r.DELETE("/loans/:id", handler.DeleteLoan)
	r.GET("/loans/:id/summary", handler.GetLoanSummary)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func TestLoanHandler_CreateLoan(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockLoanService{
			createLoanFn: func(input services.LoanInput) (*models.Loan, error) {
				return &models.Loan{
					Base:               models.Base{ID: uuid.New()},
					Name:               input.Name,
					Category:           input.Category,
					Principal:          input.Principal,
					AnnualInterestRate: input.AnnualInterestRate,
					TenureMonths:       input.TenureMonths,
					LoanStartDate:      input.LoanStartDate,
					EMIStartDate:       input.LoanStartDate,
					EMIAmount:          testutil.MustDecimal(t, "8678.23"),
				}, nil
			},
		}
		handler := NewLoanHandler(svc, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "POST", "/loans",
			`{"name":"House","category":"home","principal":"1000000","annual_interest_rate":"8.5","tenure_months":240,"loan_start_date":"2024-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		loan := result["loan"].(map[string]interface{})
		if loan["name"] != "House" {
			t.Errorf("expected House, got %v", loan["name"])
		}
		if loan["emi_amount"] != "8678.23" {
			t.Errorf("expected emi_amount 8678.23, got %v", loan["emi_amount"])
		}
	})

	t.Run("returns 400 on bad category", func(t *testing.T) {
		handler := NewLoanHandler(&mockLoanService{}, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "POST", "/loans",
			`{"name":"House","category":"yacht","principal":"1000000","tenure_months":240,"loan_start_date":"2024-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on service validation error", func(t *testing.T) {
		svc := &mockLoanService{
			createLoanFn: func(services.LoanInput) (*models.Loan, error) {
				return nil, apperrors.ErrInvalidLoanTerms
			},
		}
		handler := NewLoanHandler(svc, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "POST", "/loans",
			`{"name":"House","category":"home","principal":"1000000","tenure_months":240,"loan_start_date":"2024-01-01T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_LOAN_TERMS")
	})
}

func TestLoanHandler_GetLoan(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockLoanService{
			getLoanByIDFn: func(string) (*models.Loan, error) {
				return nil, apperrors.ErrLoanNotFound
			},
		}
		handler := NewLoanHandler(svc, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "GET", "/loans/"+uuid.New(), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "LOAN_NOT_FOUND")
	})

	t.Run("returns 400 on malformed ID", func(t *testing.T) {
		handler := NewLoanHandler(&mockLoanService{}, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "GET", "/loans/not-a-uuid", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestLoanHandler_GetLoans(t *testing.T) {
	t.Run("passes category filter", func(t *testing.T) {
		var gotCategory *models.LoanCategory
		svc := &mockLoanService{
			getLoansFn: func(_ pagination.PageRequest, category *models.LoanCategory) (*pagination.PageResponse[models.Loan], error) {
				gotCategory = category
				resp := pagination.NewPageResponse([]models.Loan{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewLoanHandler(svc, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "GET", "/loans?category=car", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotCategory == nil || *gotCategory != models.LoanCategoryCar {
			t.Errorf("expected car filter, got %v", gotCategory)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		handler := NewLoanHandler(&mockLoanService{}, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "GET", "/loans?category=yacht", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestLoanHandler_DeleteLoan(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewLoanHandler(&mockLoanService{}, &mockAuditService{})
		r := setupLoanRouter(handler)

		rec := doRequest(r, "DELETE", "/loans/"+uuid.New(), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

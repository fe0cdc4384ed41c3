package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
	"emitrack/internal/services"
	"emitrack/internal/uuid"
)

// --- mock modification service ---

type mockModificationService struct {
	applyPrepaymentFn    func(loanID string, amount decimal.Decimal, atSeq int, reduceTenure bool) (*services.ModificationResult, error)
	applyStepUpFn        func(loanID string, amount, percentage *decimal.Decimal, fromSeq int) (*services.ModificationResult, error)
	changeInterestRateFn func(loanID string, newRate decimal.Decimal, affectedSeqs []int) (*services.ModificationResult, error)
	listModificationsFn  func(loanID string, kind *models.ModificationKind, page pagination.PageRequest) (*pagination.PageResponse[models.Modification], error)
}

func (m *mockModificationService) ApplyPrepayment(loanID string, amount decimal.Decimal, atSeq int, reduceTenure bool) (*services.ModificationResult, error) {
	if m.applyPrepaymentFn != nil {
		return m.applyPrepaymentFn(loanID, amount, atSeq, reduceTenure)
	}
	return &services.ModificationResult{}, nil
}

func (m *mockModificationService) ApplyStepUp(loanID string, amount, percentage *decimal.Decimal, fromSeq int) (*services.ModificationResult, error) {
	if m.applyStepUpFn != nil {
		return m.applyStepUpFn(loanID, amount, percentage, fromSeq)
	}
	return &services.ModificationResult{}, nil
}

func (m *mockModificationService) ChangeInterestRate(loanID string, newRate decimal.Decimal, affectedSeqs []int) (*services.ModificationResult, error) {
	if m.changeInterestRateFn != nil {
		return m.changeInterestRateFn(loanID, newRate, affectedSeqs)
	}
	return &services.ModificationResult{}, nil
}

func (m *mockModificationService) ListModifications(loanID string, kind *models.ModificationKind, page pagination.PageRequest) (*pagination.PageResponse[models.Modification], error) {
	if m.listModificationsFn != nil {
		return m.listModificationsFn(loanID, kind, page)
	}
	return &pagination.PageResponse[models.Modification]{}, nil
}

var _ services.ModificationServicer = (*mockModificationService)(nil)

func setupModificationRouter(handler *ModificationHandler) *gin.Engine {
	r := gin.New()
	r.POST("/loans/:id/prepayment", handler.ApplyPrepayment)
	r.POST("/loans/:id/step-up", handler.ApplyStepUp)
	r.POST("/loans/:id/interest-rate", handler.ChangeInterestRate)
	r.GET("/loans/:id/modifications", handler.ListModifications)
	return r
}

func TestModificationHandler_ApplyPrepayment(t *testing.T) {
	t.Run("passes amount and pivot through", func(t *testing.T) {
		var gotAmount decimal.Decimal
		var gotSeq int
		var gotReduce bool
		svc := &mockModificationService{
			applyPrepaymentFn: func(_ string, amount decimal.Decimal, atSeq int, reduceTenure bool) (*services.ModificationResult, error) {
				gotAmount, gotSeq, gotReduce = amount, atSeq, reduceTenure
				return &services.ModificationResult{Loan: &models.Loan{}}, nil
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "POST", "/loans/"+uuid.New()+"/prepayment",
			`{"amount":"100000","at_sequence":12,"reduce_tenure":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotAmount.Equal(decimal.NewFromInt(100000)) {
			t.Errorf("expected amount 100000, got %s", gotAmount)
		}
		if gotSeq != 12 || !gotReduce {
			t.Errorf("expected at_sequence 12 with reduce_tenure, got %d/%v", gotSeq, gotReduce)
		}
	})

	t.Run("rejects missing sequence", func(t *testing.T) {
		handler := NewModificationHandler(&mockModificationService{}, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "POST", "/loans/"+uuid.New()+"/prepayment", `{"amount":"100000"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps engine validation to 422", func(t *testing.T) {
		svc := &mockModificationService{
			applyPrepaymentFn: func(string, decimal.Decimal, int, bool) (*services.ModificationResult, error) {
				return nil, apperrors.ErrTenureNotReducible
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "POST", "/loans/"+uuid.New()+"/prepayment",
			`{"amount":"999999999","at_sequence":1,"reduce_tenure":true}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TENURE_NOT_REDUCIBLE")
	})
}

func TestModificationHandler_ApplyStepUp(t *testing.T) {
	t.Run("forwards only the provided parameter", func(t *testing.T) {
		var gotAmount, gotPercentage *decimal.Decimal
		svc := &mockModificationService{
			applyStepUpFn: func(_ string, amount, percentage *decimal.Decimal, _ int) (*services.ModificationResult, error) {
				gotAmount, gotPercentage = amount, percentage
				return &services.ModificationResult{Loan: &models.Loan{}}, nil
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "POST", "/loans/"+uuid.New()+"/step-up",
			`{"percentage":"10","from_sequence":13}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotAmount != nil {
			t.Errorf("expected nil amount, got %s", gotAmount)
		}
		if gotPercentage == nil || !gotPercentage.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected percentage 10, got %v", gotPercentage)
		}
	})
}

func TestModificationHandler_ChangeInterestRate(t *testing.T) {
	t.Run("nominated installments pass through", func(t *testing.T) {
		var gotRate decimal.Decimal
		var gotSeqs []int
		svc := &mockModificationService{
			changeInterestRateFn: func(_ string, newRate decimal.Decimal, affectedSeqs []int) (*services.ModificationResult, error) {
				gotRate, gotSeqs = newRate, affectedSeqs
				return &services.ModificationResult{Loan: &models.Loan{}}, nil
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "POST", "/loans/"+uuid.New()+"/interest-rate",
			`{"new_interest_rate":"9","affected_installments":[50]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotRate.Equal(decimal.NewFromInt(9)) {
			t.Errorf("expected rate 9, got %s", gotRate)
		}
		if len(gotSeqs) != 1 || gotSeqs[0] != 50 {
			t.Errorf("expected affected installments [50], got %v", gotSeqs)
		}
	})
}

func TestModificationHandler_ListModifications(t *testing.T) {
	t.Run("returns 404 for unknown loan", func(t *testing.T) {
		svc := &mockModificationService{
			listModificationsFn: func(string, *models.ModificationKind, pagination.PageRequest) (*pagination.PageResponse[models.Modification], error) {
				return nil, apperrors.ErrLoanNotFound
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "GET", "/loans/"+uuid.New()+"/modifications", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("kind_filter_passes_through", func(t *testing.T) {
		var gotKind *models.ModificationKind
		svc := &mockModificationService{
			listModificationsFn: func(_ string, kind *models.ModificationKind, _ pagination.PageRequest) (*pagination.PageResponse[models.Modification], error) {
				gotKind = kind
				return &pagination.PageResponse[models.Modification]{}, nil
			},
		}
		handler := NewModificationHandler(svc, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "GET", "/loans/"+uuid.New()+"/modifications?kind=prepayment", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotKind == nil || *gotKind != models.ModificationPrepayment {
			t.Errorf("expected prepayment kind filter, got %v", gotKind)
		}
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		handler := NewModificationHandler(&mockModificationService{}, &mockAuditService{})
		r := setupModificationRouter(handler)

		rec := doRequest(r, "GET", "/loans/"+uuid.New()+"/modifications?kind=refinance", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

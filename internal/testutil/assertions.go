package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "emitrack/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertDecimalEqual fails the test if got does not equal the decimal parsed
// from want.
func AssertDecimalEqual(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()

	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("invalid expected decimal %q: %v", want, err)
	}
	if !got.Equal(expected) {
		t.Errorf("expected %s, got %s", expected.String(), got.String())
	}
}

// AssertDecimalWithin fails the test if got differs from the decimal parsed
// from want by more than tolerance.
func AssertDecimalWithin(t *testing.T, got decimal.Decimal, want, tolerance string) {
	t.Helper()

	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("invalid expected decimal %q: %v", want, err)
	}
	tol, err := decimal.NewFromString(tolerance)
	if err != nil {
		t.Fatalf("invalid tolerance %q: %v", tolerance, err)
	}
	if got.Sub(expected).Abs().GreaterThan(tol) {
		t.Errorf("expected %s within %s, got %s", expected.String(), tol.String(), got.String())
	}
}

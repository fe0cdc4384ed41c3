package emi

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
)

// The modification operations take a full snapshot of a loan's installments
// and return a full replacement snapshot; the input is never mutated. Only
// open rows (pending or upcoming) are ever re-amortized; paid and modified
// rows are settled history.

// ApplyPrepayment records an extra principal payment made after installment
// atSeq. The prepayment reduces the post-installment balance, not the pivot
// installment itself. With reduceTenure the EMI stays fixed and the loan's
// tenure shrinks via the inverse annuity formula; otherwise the tenure stays
// fixed and the EMI is recomputed over the remaining open installments. The
// rows after the pivot are then re-amortized from the reduced balance.
func ApplyPrepayment(loan models.Loan, installments []models.Installment, amount decimal.Decimal, atSeq int, reduceTenure bool) (models.Loan, []models.Installment, error) {
	if !amount.IsPositive() {
		return loan, nil, apperrors.ErrInvalidAmount
	}

	rows := cloneSorted(installments)
	pivot := indexOfSeq(rows, atSeq)
	if pivot < 0 {
		return loan, nil, apperrors.WithMessage(apperrors.ErrInstallmentNotFound, fmt.Sprintf("Installment %d not found", atSeq))
	}

	reduced := clampZero(rows[pivot].OutstandingAfter.Sub(amount))

	var affected []int
	for i := pivot + 1; i < len(rows); i++ {
		if rows[i].Status.IsOpen() {
			affected = append(affected, i)
		}
	}

	if len(affected) == 0 {
		rows[pivot].OutstandingAfter = reduced
		return loan, rows, nil
	}

	monthly := MonthlyRate(loan.AnnualInterestRate)

	if reduceTenure {
		n, err := remainingTenure(reduced, monthly, loan.EMIAmount)
		if err != nil {
			return loan, nil, err
		}
		loan.TenureMonths = atSeq + n
	} else {
		loan.EMIAmount = ComputeEMI(reduced, loan.AnnualInterestRate, len(affected))
	}

	reamortize(rows, affected, reduced, monthly, loan.EMIAmount, nil)
	return loan, rows, nil
}

// ApplyStepUp raises the loan's EMI from installment fromSeq onward, either
// by a fixed amount or by a percentage of the current EMI (exactly one must
// be given). Open rows at or after fromSeq are re-amortized from the balance
// outstanding just before fromSeq with the stepped-up payment.
func ApplyStepUp(loan models.Loan, installments []models.Installment, amount, percentage *decimal.Decimal, fromSeq int) (models.Loan, []models.Installment, error) {
	if (amount == nil) == (percentage == nil) {
		return loan, nil, apperrors.ErrInvalidStepUp
	}

	var stepped decimal.Decimal
	switch {
	case amount != nil:
		if !amount.IsPositive() {
			return loan, nil, apperrors.ErrInvalidStepUp
		}
		stepped = round2(loan.EMIAmount.Add(*amount))
	default:
		if !percentage.IsPositive() {
			return loan, nil, apperrors.ErrInvalidStepUp
		}
		factor := decimal.NewFromInt(1).Add(percentage.Div(hundred))
		stepped = round2(loan.EMIAmount.Mul(factor))
	}

	rows := cloneSorted(installments)
	var affected []int
	for i := range rows {
		if rows[i].SequenceNumber >= fromSeq && rows[i].Status.IsOpen() {
			affected = append(affected, i)
		}
	}

	loan.EMIAmount = stepped
	if len(affected) == 0 {
		return loan, rows, nil
	}

	outstanding := balanceBefore(rows, affected[0], loan.Principal)
	reamortize(rows, affected, outstanding, MonthlyRate(loan.AnnualInterestRate), stepped, nil)
	return loan, rows, nil
}

// ChangeInterestRate re-amortizes the schedule at a new annual rate. The
// first open installment among the nominated sequence numbers (all open rows
// when affectedSeqs is nil or empty) anchors the change; from there the new rate
// propagates through every later open row in the schedule regardless of the
// nominated set, tagging each row with the modified rate. The loan's EMI
// amount is unchanged by this operation.
func ChangeInterestRate(loan models.Loan, installments []models.Installment, newRate decimal.Decimal, affectedSeqs []int) ([]models.Installment, error) {
	if newRate.IsNegative() || newRate.GreaterThan(hundred) {
		return nil, apperrors.ErrRateOutOfRange
	}

	rows := cloneSorted(installments)

	first := -1
	for i := range rows {
		if !rows[i].Status.IsOpen() {
			continue
		}
		if len(affectedSeqs) == 0 || containsSeq(affectedSeqs, rows[i].SequenceNumber) {
			first = i
			break
		}
	}
	if first < 0 {
		return rows, nil
	}

	var tail []int
	for i := first; i < len(rows); i++ {
		if rows[i].Status.IsOpen() {
			tail = append(tail, i)
		}
	}

	outstanding := balanceBefore(rows, first, loan.Principal)
	reamortize(rows, tail, outstanding, MonthlyRate(newRate), loan.EMIAmount, &newRate)
	return rows, nil
}

// amortizeRow computes one installment's components from the balance
// outstanding before it: interest = round(O*r), principal = round(E-interest)
// capped at O, balance after floored at zero.
func amortizeRow(outstanding, rate, payment decimal.Decimal) (principal, interest, total, after decimal.Decimal) {
	interest = round2(outstanding.Mul(rate))
	principal = round2(payment.Sub(interest))
	if principal.GreaterThan(outstanding) {
		principal = outstanding
	}
	total = principal.Add(interest)
	after = clampZero(round2(outstanding.Sub(principal)))
	return
}

// reamortize rewrites the rows at the given indexes in order, propagating the
// running balance forward. When taggedRate is non-nil each rewritten row is
// marked with it as its modified interest rate.
func reamortize(rows []models.Installment, idx []int, outstanding, rate, payment decimal.Decimal, taggedRate *decimal.Decimal) {
	for _, i := range idx {
		principal, interest, total, after := amortizeRow(outstanding, rate, payment)
		rows[i].Principal = principal
		rows[i].Interest = interest
		rows[i].Total = total
		rows[i].OutstandingAfter = after
		if taggedRate != nil {
			r := *taggedRate
			rows[i].ModifiedRate = &r
		}
		outstanding = after
	}
}

// remainingTenure solves the annuity formula for the number of periods needed
// to pay off a balance at a fixed payment:
//
//	n = ceil(-ln(1 - O*r/E) / ln(1+r))
//
// At zero rate the closed form is undefined and a straight-line division is
// used instead. When the payment does not even cover one period's interest
// the logarithm argument is non-positive and the operation is rejected.
func remainingTenure(outstanding, monthlyRate, payment decimal.Decimal) (int, error) {
	if !payment.IsPositive() {
		return 0, apperrors.ErrTenureNotReducible
	}
	if outstanding.IsZero() {
		return 0, nil
	}
	if monthlyRate.IsZero() {
		return int(outstanding.Div(payment).Ceil().IntPart()), nil
	}

	r := monthlyRate.InexactFloat64()
	arg := 1 - outstanding.InexactFloat64()*r/payment.InexactFloat64()
	if arg <= 0 {
		return 0, apperrors.ErrTenureNotReducible
	}
	return int(math.Ceil(-math.Log(arg) / math.Log(1+r))), nil
}

// balanceBefore returns the outstanding balance just before the row at index
// i: the preceding row's balance, or the full principal when i is the first
// row of the schedule.
func balanceBefore(rows []models.Installment, i int, principal decimal.Decimal) decimal.Decimal {
	if i == 0 {
		return principal
	}
	return rows[i-1].OutstandingAfter
}

func indexOfSeq(rows []models.Installment, seq int) int {
	for i := range rows {
		if rows[i].SequenceNumber == seq {
			return i
		}
	}
	return -1
}

func cloneSorted(installments []models.Installment) []models.Installment {
	rows := make([]models.Installment, len(installments))
	copy(rows, installments)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SequenceNumber < rows[j].SequenceNumber })
	return rows
}

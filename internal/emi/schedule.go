package emi

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"emitrack/internal/models"
)

// GenerateSchedule builds the complete ordered installment sequence for a
// loan. When the loan start date and first-EMI date differ in calendar month
// or day, a partial-period adjustment entry (sequence 0) covers the interest
// accrued between disbursement and the first regular EMI. Regular
// installments are pinned to the day-of-month of the EMI start date, clamped
// to the end of shorter months.
//
// Historical interest-rate changes are reconstructed from the modification
// records; prepayment and step-up records are not replayable (their effects
// live only in the mutated rows of the stored schedule).
//
// The output is deterministic for identical inputs: statuses are resolved
// against the supplied reference day, not the wall clock.
func GenerateSchedule(loan *models.Loan, modifications []models.Modification, asOf time.Time) []models.Installment {
	outstanding := loan.Principal
	monthly := MonthlyRate(loan.AnnualInterestRate)
	payment := loan.EMIAmount

	mods := make([]models.Modification, len(modifications))
	copy(mods, modifications)
	sort.SliceStable(mods, func(i, j int) bool { return mods[i].Date.Before(mods[j].Date) })

	start := loan.LoanStartDate
	emiStart := loan.EMIStart()

	sameMonth := start.Year() == emiStart.Year() && start.Month() == emiStart.Month()
	hasAdjustment := !loan.EMIStartDate.IsZero() && (!sameMonth || start.Day() != emiStart.Day())

	schedule := make([]models.Installment, 0, loan.TenureMonths+1)

	if hasAdjustment {
		row, after := adjustmentEntry(loan, outstanding, monthly, payment, asOf)
		schedule = append(schedule, row)
		outstanding = after
	}

	// Regular installments start the month after disbursement when an
	// adjustment entry was emitted, otherwise in the EMI start month.
	firstMonth := startOfMonth(emiStart)
	if hasAdjustment {
		firstMonth = startOfMonth(start).AddDate(0, 1, 0)
	}
	day := emiStart.Day()

	for i := 0; i < loan.TenureMonths; i++ {
		seq := i + 1
		due := pinDay(firstMonth.AddDate(0, i, 0), day)

		rate := monthly
		var override *decimal.Decimal
		if newRate := rateOverride(mods, seq, due); newRate != nil {
			rate = MonthlyRate(*newRate)
			override = newRate
		}

		principal, interest, total, after := amortizeRow(outstanding, rate, payment)
		outstanding = after

		row := models.Installment{
			LoanID:           loan.ID,
			SequenceNumber:   seq,
			DueDate:          due,
			Principal:        principal,
			Interest:         interest,
			Total:            total,
			OutstandingAfter: outstanding,
			Status:           ResolveStatus(due, "", asOf),
		}
		if override != nil {
			r := *override
			row.ModifiedRate = &r
		}
		schedule = append(schedule, row)
	}

	return schedule
}

// adjustmentEntry synthesizes the sequence-0 partial-period entry, due on the
// loan start date. The partial period runs from disbursement to the end of
// that month; interest and payment are prorated over its day count.
func adjustmentEntry(loan *models.Loan, outstanding, monthly, payment decimal.Decimal, asOf time.Time) (models.Installment, decimal.Decimal) {
	start := loan.LoanStartDate
	total := daysInMonth(start)
	remaining := total - start.Day() + 1
	ratio := decimal.NewFromInt(int64(remaining)).Div(decimal.NewFromInt(int64(total)))

	interest := round2(outstanding.Mul(monthly).Mul(ratio))
	prorated := round2(payment.Mul(ratio))

	principal := round2(prorated.Sub(interest))
	if principal.IsNegative() {
		principal = decimal.Zero
	}
	if principal.GreaterThan(outstanding) {
		principal = outstanding
	}

	after := clampZero(round2(outstanding.Sub(principal)))

	return models.Installment{
		LoanID:           loan.ID,
		SequenceNumber:   0,
		DueDate:          start,
		Principal:        principal,
		Interest:         interest,
		Total:            principal.Add(interest),
		OutstandingAfter: after,
		Status:           ResolveStatus(start, "", asOf),
		IsAdjustment:     true,
	}, after
}

// rateOverride returns the rate from the first interest-change record that
// either nominates this sequence number or predates the due date.
func rateOverride(mods []models.Modification, seq int, due time.Time) *decimal.Decimal {
	for i := range mods {
		m := &mods[i]
		if m.Kind != models.ModificationInterestChange || m.NewRate == nil {
			continue
		}
		if containsSeq(m.AffectedSequences, seq) || !m.Date.After(due) {
			return m.NewRate
		}
	}
	return nil
}

func containsSeq(seqs []int, seq int) bool {
	for _, s := range seqs {
		if s == seq {
			return true
		}
	}
	return false
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// pinDay places a due date on the given day of the anchor's month, clamping
// to the last day when the month is shorter (e.g. day 31 in February).
func pinDay(monthAnchor time.Time, day int) time.Time {
	y, m, _ := monthAnchor.Date()
	d := time.Date(y, m, day, 0, 0, 0, 0, monthAnchor.Location())
	if d.Month() != m {
		d = time.Date(y, m+1, 0, 0, 0, 0, 0, monthAnchor.Location())
	}
	return d
}

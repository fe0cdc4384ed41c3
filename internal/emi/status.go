package emi

import (
	"time"

	"emitrack/internal/models"
)

// ResolveStatus classifies an installment by its due date relative to the
// reference day. Paid and modified are sticky: they are set by explicit user
// or engine action and are never downgraded by date drift. Otherwise a past
// due date is assumed settled, a future one is upcoming, and a due date on
// the reference day itself is pending.
func ResolveStatus(dueDate time.Time, previous models.InstallmentStatus, asOf time.Time) models.InstallmentStatus {
	if previous == models.InstallmentPaid || previous == models.InstallmentModified {
		return previous
	}

	due := startOfDay(dueDate)
	today := startOfDay(asOf)

	switch {
	case due.Before(today):
		return models.InstallmentPaid
	case due.After(today):
		return models.InstallmentUpcoming
	default:
		return models.InstallmentPending
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

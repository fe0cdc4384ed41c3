package services

import (
	"testing"
	"time"

	"emitrack/internal/models"
	"emitrack/internal/testutil"
	"emitrack/internal/uuid"
)

func TestGetSchedule(t *testing.T) {
	t.Run("materializes_on_first_read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)

		schedule, err := svc.GetSchedule(loan.ID)
		testutil.AssertNoError(t, err)
		if len(schedule) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(schedule))
		}

		var count int64
		db.Model(&models.Installment{}).Where("loan_id = ?", loan.ID).Count(&count)
		if count != 12 {
			t.Errorf("expected 12 persisted rows, got %d", count)
		}

		// A second read returns the stored schedule, not a fresh one.
		again, err := svc.GetSchedule(loan.ID)
		testutil.AssertNoError(t, err)
		if len(again) != 12 {
			t.Fatalf("expected 12 installments on reread, got %d", len(again))
		}
		if again[0].ID != schedule[0].ID {
			t.Error("expected the same stored rows on reread")
		}
	})

	t.Run("refreshes_stale_statuses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		// Seeded as if generated before the loan started, so every row is
		// stored as upcoming even though the due dates are long past.
		testutil.CreateTestSchedule(t, db, loan, time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC))

		schedule, err := svc.GetSchedule(loan.ID)
		testutil.AssertNoError(t, err)
		for i := range schedule {
			if schedule[i].Status != models.InstallmentPaid {
				t.Errorf("sequence %d: expected refreshed status paid, got %s",
					schedule[i].SequenceNumber, schedule[i].Status)
			}
		}

		var stored []models.Installment
		db.Where("loan_id = ?", loan.ID).Find(&stored)
		for i := range stored {
			if stored[i].Status != models.InstallmentPaid {
				t.Errorf("sequence %d: expected refresh persisted, got %s",
					stored[i].SequenceNumber, stored[i].Status)
			}
		}
	})

	t.Run("loan_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		_, err := svc.GetSchedule(uuid.New())
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
	})
}

func TestRegenerateSchedule(t *testing.T) {
	t.Run("rebuilds_from_terms", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		old := testutil.CreateTestSchedule(t, db, loan, start)

		// Tamper with a stored row; regeneration must discard it.
		db.Model(&old[0]).Update("principal", testutil.MustDecimal(t, "1"))

		schedule, err := svc.RegenerateSchedule(loan.ID)
		testutil.AssertNoError(t, err)
		if len(schedule) != 12 {
			t.Fatalf("expected 12 installments, got %d", len(schedule))
		}
		testutil.AssertDecimalEqual(t, schedule[0].Principal, "10000")

		var count int64
		db.Unscoped().Model(&models.Installment{}).Where("loan_id = ?", loan.ID).Count(&count)
		if count != 12 {
			t.Errorf("expected exactly 12 rows after regeneration, got %d", count)
		}
	})
}

func TestMarkInstallmentPaid(t *testing.T) {
	t.Run("settles_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		testutil.CreateTestSchedule(t, db, loan, start)

		row, err := svc.MarkInstallmentPaid(loan.ID, 3)
		testutil.AssertNoError(t, err)
		if row.Status != models.InstallmentPaid {
			t.Errorf("expected paid, got %s", row.Status)
		}

		var stored models.Installment
		db.Where("loan_id = ? AND sequence_number = ?", loan.ID, 3).First(&stored)
		if stored.Status != models.InstallmentPaid {
			t.Errorf("expected paid persisted, got %s", stored.Status)
		}
	})

	t.Run("unknown_sequence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		testutil.CreateTestSchedule(t, db, loan, start)

		_, err := svc.MarkInstallmentPaid(loan.ID, 99)
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_FOUND")
	})

	t.Run("unknown_loan", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		_, err := svc.MarkInstallmentPaid(uuid.New(), 1)
		testutil.AssertAppError(t, err, "LOAN_NOT_FOUND")
	})
}

func TestShiftDueDates(t *testing.T) {
	t.Run("moves_range_monthly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		original := testutil.CreateTestSchedule(t, db, loan, start)

		newStart := time.Date(2090, time.March, 10, 0, 0, 0, 0, time.UTC)
		schedule, err := svc.ShiftDueDates(loan.ID, 3, 5, newStart)
		testutil.AssertNoError(t, err)

		bySeq := make(map[int]models.Installment, len(schedule))
		for _, row := range schedule {
			bySeq[row.SequenceNumber] = row
		}

		if !bySeq[3].DueDate.Equal(newStart) {
			t.Errorf("sequence 3: expected %s, got %s", newStart, bySeq[3].DueDate)
		}
		if !bySeq[4].DueDate.Equal(newStart.AddDate(0, 1, 0)) {
			t.Errorf("sequence 4: expected one month after the new start, got %s", bySeq[4].DueDate)
		}
		if !bySeq[5].DueDate.Equal(newStart.AddDate(0, 2, 0)) {
			t.Errorf("sequence 5: expected two months after the new start, got %s", bySeq[5].DueDate)
		}
		if !bySeq[6].DueDate.Equal(original[5].DueDate) {
			t.Errorf("sequence 6: expected untouched due date, got %s", bySeq[6].DueDate)
		}
	})

	t.Run("inverted_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		_, err := svc.ShiftDueDates(uuid.New(), 5, 3, time.Now())
		testutil.AssertAppError(t, err, "INVALID_SEQUENCE_RANGE")
	})

	t.Run("no_rows_in_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewScheduleService(db)

		start := time.Date(2090, time.January, 1, 0, 0, 0, 0, time.UTC)
		loan := testutil.CreateTestLoanWithTerms(t, db, "120000", "0", 12, start, start)
		testutil.CreateTestSchedule(t, db, loan, start)

		_, err := svc.ShiftDueDates(loan.ID, 50, 60, time.Now())
		testutil.AssertAppError(t, err, "INSTALLMENT_NOT_FOUND")
	})
}

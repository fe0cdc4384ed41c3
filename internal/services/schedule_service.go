package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"emitrack/internal/emi"
	apperrors "emitrack/internal/errors"
	"emitrack/internal/logger"
	"emitrack/internal/models"
)

type scheduleService struct {
	db *gorm.DB
}

// NewScheduleService creates a new schedule service with the given database
// connection.
func NewScheduleService(db *gorm.DB) ScheduleServicer {
	return &scheduleService{db: db}
}

// GetSchedule returns the loan's installment schedule. On first access the
// schedule is materialized from the loan terms and persisted; on later reads
// the stored rows are returned with their statuses refreshed against the
// current date.
func (s *scheduleService) GetSchedule(loanID string) ([]models.Installment, error) {
	var schedule []models.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, installments, err := loanSnapshot(tx, loanID)
		if err != nil {
			return err
		}

		if len(installments) == 0 {
			installments, err = s.materialize(tx, loan)
			if err != nil {
				return err
			}
			schedule = installments
			return nil
		}

		now := time.Now()
		for i := range installments {
			row := &installments[i]
			resolved := emi.ResolveStatus(row.DueDate, row.Status, now)
			if resolved == row.Status {
				continue
			}
			row.Status = resolved
			if err := tx.Model(row).Update("status", resolved).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		schedule = installments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// RegenerateSchedule discards the stored schedule and rebuilds it from the
// loan terms, replaying the loan's modification history.
func (s *scheduleService) RegenerateSchedule(loanID string) ([]models.Installment, error) {
	var schedule []models.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, err := findLoan(tx, loanID)
		if err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("loan_id = ?", loanID).
			Delete(&models.Installment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		schedule, err = s.materialize(tx, loan)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Infow("schedule regenerated", "loan_id", loanID, "installments", len(schedule))
	return schedule, nil
}

func (s *scheduleService) materialize(tx *gorm.DB, loan *models.Loan) ([]models.Installment, error) {
	var modifications []models.Modification
	if err := tx.Where("loan_id = ?", loan.ID).
		Order("date ASC").
		Find(&modifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	installments := emi.GenerateSchedule(loan, modifications, time.Now())
	if len(installments) == 0 {
		return installments, nil
	}
	if err := tx.Create(&installments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return installments, nil
}

func (s *scheduleService) MarkInstallmentPaid(loanID string, sequenceNumber int) (*models.Installment, error) {
	var row models.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findLoan(tx, loanID); err != nil {
			return err
		}
		if err := tx.Where("loan_id = ? AND sequence_number = ?", loanID, sequenceNumber).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrInstallmentNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		row.Status = models.InstallmentPaid
		if err := tx.Model(&row).Update("status", models.InstallmentPaid).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ShiftDueDates moves the due dates of installments in [startSeq, endSeq].
// The first installment in the range lands on newStartDate and each
// subsequent one follows at monthly intervals, preserving the gap to the
// range start. Statuses of shifted rows are re-resolved against the new
// dates.
func (s *scheduleService) ShiftDueDates(loanID string, startSeq, endSeq int, newStartDate time.Time) ([]models.Installment, error) {
	if startSeq > endSeq {
		return nil, apperrors.ErrInvalidSequenceRange
	}

	var schedule []models.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, installments, err := loanSnapshot(tx, loanID)
		if err != nil {
			return err
		}

		now := time.Now()
		found := false
		for i := range installments {
			row := &installments[i]
			if row.SequenceNumber < startSeq || row.SequenceNumber > endSeq {
				continue
			}
			found = true
			row.DueDate = newStartDate.AddDate(0, row.SequenceNumber-startSeq, 0)
			row.Status = emi.ResolveStatus(row.DueDate, row.Status, now)
			if err := tx.Model(row).
				Updates(map[string]any{"due_date": row.DueDate, "status": row.Status}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if !found {
			return apperrors.ErrInstallmentNotFound
		}
		schedule = installments
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

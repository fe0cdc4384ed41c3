// Package export writes EMI schedules in interchange formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
)

var scheduleHeader = []string{"EMI #", "Due Date", "Principal", "Interest", "Total", "Outstanding Principal", "Status"}

// WriteScheduleCSV writes the installments as CSV. A non-zero year keeps only
// installments due in that calendar year. The adjustment row is labelled
// "Adjustment" instead of a sequence number.
func WriteScheduleCSV(w io.Writer, installments []models.Installment, year int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scheduleHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i := range installments {
		row := &installments[i]
		if year != 0 && row.DueDate.Year() != year {
			continue
		}

		label := strconv.Itoa(row.SequenceNumber)
		if row.IsAdjustment {
			label = "Adjustment"
		}
		record := []string{
			label,
			row.DueDate.Format("2006-01-02"),
			row.Principal.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Total.StringFixed(2),
			row.OutstandingAfter.StringFixed(2),
			string(row.Status),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ScheduleFilename builds the download filename for a schedule export.
func ScheduleFilename(loanID string, year int) string {
	return fmt.Sprintf("emi-schedule-%s-%d.csv", loanID, year)
}

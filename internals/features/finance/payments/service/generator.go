package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	studentModel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/features/finance/payments/dto"
	model "akademiku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Invoice / Payment Generator

   Invoked by an external cron trigger; must be idempotent per
   calendar month, so duplicate runs never double-bill.
========================================================= */

// MonthWindow returns [start, end) of the calendar month containing t.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// MonthlyDueDate: invoices fall due on the 15th of the billing month.
func MonthlyDueDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 15, 0, 0, 0, 0, t.Location())
}

// MonthlyDescription labels the invoice, e.g.
// "Monthly Fee - Premium - September 2026".
func MonthlyDescription(packageType string, t time.Time) string {
	return fmt.Sprintf("Monthly Fee - %s - %s", packageType, t.Format("January 2006"))
}

// GenerateMonthlyPayments creates one pending payment per billable
// student of the academy for the current calendar month. Re-runs skip
// students that already have an invoice inside the month window.
// Per-student insert failures are logged and counted, the batch
// continues.
func GenerateMonthlyPayments(store PaymentStore, academyID uuid.UUID, now time.Time) (dto.GenerateResult, error) {
	var res dto.GenerateResult

	students, err := store.BillableStudents(academyID)
	if err != nil {
		return res, err
	}

	monthStart, monthEnd := MonthWindow(now)
	due := MonthlyDueDate(now)

	for i := range students {
		s := &students[i]
		res.Total++

		if !s.Billable() {
			res.Skipped++
			continue
		}

		exists, err := store.HasPaymentInWindow(s.StudentID, monthStart, monthEnd)
		if err != nil {
			log.Printf("[ERROR] generator: existence check for student %s: %v", s.StudentID, err)
			res.Failed++
			continue
		}
		if exists {
			res.Skipped++
			continue
		}

		desc := MonthlyDescription(s.StudentPackageType, now)
		dueDate := due
		p := model.PaymentModel{
			PaymentAcademyID:      s.StudentAcademyID,
			PaymentStudentID:      s.StudentID,
			PaymentAmount:         s.FinalMonthlyFee(),
			PaymentPaidAmount:     0,
			PaymentDiscountAmount: s.DiscountAmount(),
			PaymentPackageType:    s.StudentPackageType,
			PaymentStatus:         model.PaymentStatusPending,
			PaymentDueDate:        &dueDate,
			PaymentDescription:    &desc,
		}

		if err := store.CreatePayment(&p); err != nil {
			// A concurrent run may have inserted first; a unique guard
			// on (student, month) counts as a skip, not a failure.
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				res.Skipped++
				continue
			}
			log.Printf("[ERROR] generator: insert for student %s: %v", s.StudentID, err)
			res.Failed++
			continue
		}
		res.Created++

		if err := store.CacheStudentStatus(s.StudentID, studentModel.StudentPaymentStatusPending); err != nil {
			log.Printf("[WARN] generator: payment_status cache for student %s: %v", s.StudentID, err)
		}
	}

	log.Printf("[INFO] generator: created=%d skipped=%d failed=%d total=%d",
		res.Created, res.Skipped, res.Failed, res.Total)
	return res, nil
}

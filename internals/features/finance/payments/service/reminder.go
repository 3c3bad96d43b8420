package service

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"akademiku_backend/internals/features/finance/payments/dto"
	model "akademiku_backend/internals/features/finance/payments/model"
	notif "akademiku_backend/internals/features/notifications/service"
)

/* =========================================================
   Reminder Scheduler

   Day-offset buckets around the due date, each fireable at most
   once per payment. The bucket stamp is persisted after the send
   attempt regardless of delivery outcome.
========================================================= */

const (
	BucketThreeDaysBefore = "three_days_before" // due in 3 days
	BucketDueToday        = "due_today"         // due today
	BucketThreeDaysAfter  = "three_days_after"  // 3 days overdue
	BucketSevenDaysAfter  = "seven_days_after"  // 7 days overdue
)

// offset (due_date - today, in days) → bucket
var bucketByOffset = map[int]string{
	3:  BucketThreeDaysBefore,
	0:  BucketDueToday,
	-3: BucketThreeDaysAfter,
	-7: BucketSevenDaysAfter,
}

// Trigger is the decision for one payment on one day.
type Trigger struct {
	Bucket string
	Offset int
	// MarkFailed: crossing 3 days overdue also flips the invoice to
	// failed.
	MarkFailed bool
}

// DayOffset counts whole calendar days from today until due (negative
// when overdue). Clock time is ignored.
func DayOffset(due, today time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(t).Hours() / 24)
}

// DecideDueTrigger picks at most one unfired bucket for the payment.
// Pure: no I/O, no mutation.
func DecideDueTrigger(p *model.PaymentModel, today time.Time) *Trigger {
	if !p.IsOutstanding() || p.PaymentDueDate == nil {
		return nil
	}

	offset := DayOffset(*p.PaymentDueDate, today)
	bucket, ok := bucketByOffset[offset]
	if !ok {
		return nil
	}
	if _, fired := p.ReminderFiredAt(bucket); fired {
		return nil
	}

	return &Trigger{
		Bucket:     bucket,
		Offset:     offset,
		MarkFailed: bucket == BucketThreeDaysAfter,
	}
}

// ApplyTrigger stamps the bucket and applies the trigger's lifecycle
// side effect. Pure mutation of the row; persistence is the caller's.
func ApplyTrigger(p *model.PaymentModel, trigger *Trigger, now time.Time) {
	if p.PaymentReminderSent == nil {
		p.PaymentReminderSent = datatypes.JSONMap{}
	}
	p.PaymentReminderSent[trigger.Bucket] = now.UTC().Format(time.RFC3339)

	if trigger.MarkFailed && p.PaymentStatus == model.PaymentStatusPending {
		p.PaymentStatus = model.PaymentStatusFailed
	}
}

// SendPaymentReminders walks every outstanding payment with a due date
// (or a single one when paymentID is set, the manual "send now" path),
// decides the due bucket, attempts delivery per channel, then persists
// the stamp. Per-payment failures are isolated.
func SendPaymentReminders(store PaymentStore, notifier *notif.Notifier, academyID uuid.UUID, paymentID *uuid.UUID, now time.Time) dto.ReminderResult {
	var res dto.ReminderResult

	payments, err := store.OutstandingPayments(academyID, paymentID)
	if err != nil {
		log.Printf("[ERROR] reminders: query: %v", err)
		res.Failed++
		return res
	}

	for i := range payments {
		p := &payments[i]
		res.Checked++

		trigger := DecideDueTrigger(p, now)
		if trigger == nil {
			continue
		}

		attemptDelivery(store, notifier, p, trigger)

		// Stamp the bucket regardless of delivery outcome; the status
		// change and the stamp are saved together.
		ApplyTrigger(p, trigger, now)
		if err := store.SaveReminderState(p); err != nil {
			log.Printf("[ERROR] reminders: persist for payment %s: %v", p.PaymentID, err)
			res.Failed++
			continue
		}

		if trigger.MarkFailed {
			if err := store.CacheStudentStatus(p.PaymentStudentID, p.PaymentStatus); err != nil {
				log.Printf("[WARN] reminders: payment_status cache for student %s: %v", p.PaymentStudentID, err)
			}
		}
		res.RemindersSent++
	}

	log.Printf("[INFO] reminders: sent=%d checked=%d failed=%d", res.RemindersSent, res.Checked, res.Failed)
	return res
}

func attemptDelivery(store PaymentStore, notifier *notif.Notifier, p *model.PaymentModel, trigger *Trigger) {
	if notifier == nil {
		return
	}

	s, err := store.StudentByID(p.PaymentStudentID)
	if err != nil {
		log.Printf("[WARN] reminders: student lookup for payment %s: %v", p.PaymentID, err)
		return
	}

	subject, html, sms := ReminderCopy(trigger.Bucket, s, p)
	notifier.Notify(s.EmailOrEmpty(), s.PhoneOrEmpty(), subject, html, sms)
}

package service

import (
	"fmt"
	"time"

	studentModel "akademiku_backend/internals/features/academy/students/model"
	model "akademiku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Canned copy for receipts and the four reminder buckets.
   Each returns (email subject, email html, sms text).
========================================================= */

// ReceiptCopy renders the "payment received" message. received is the
// amount applied by this verification, not the cumulative total, and
// invoice is the description the row carried before verification
// replaced it with the method label.
func ReceiptCopy(s *studentModel.StudentModel, p *model.PaymentModel, received float64, invoice string, now time.Time) (string, string, string) {
	subject := "Payment received"
	status := "Your balance is now fully settled. Thank you!"
	if !p.IsCompleted() {
		status = fmt.Sprintf("Remaining balance: %.2f.", p.RemainingBalance())
	}
	if invoice == "" {
		invoice = "monthly fee"
	}

	html := fmt.Sprintf(
		`<p>Dear %s,</p>
<p>We have received a payment of <b>%.2f</b> towards your invoice (%s) on %s.</p>
<p>%s</p>
<p>Akademiku Finance Office</p>`,
		s.StudentName, received, invoice, now.Format("2 January 2006"), status)

	sms := fmt.Sprintf("Akademiku: payment of %.2f received. Paid %.2f of %.2f. %s",
		received, p.PaymentPaidAmount, p.PaymentAmount, status)

	return subject, html, sms
}

func ReminderCopy(bucket string, s *studentModel.StudentModel, p *model.PaymentModel) (string, string, string) {
	due := ""
	if p.PaymentDueDate != nil {
		due = p.PaymentDueDate.Format("2 January 2006")
	}
	remaining := p.RemainingBalance()

	var subject, lead string
	switch bucket {
	case BucketThreeDaysBefore:
		subject = "Upcoming fee payment"
		lead = fmt.Sprintf("Your fee of %.2f is due on %s, in 3 days.", remaining, due)
	case BucketDueToday:
		subject = "Fee payment due today"
		lead = fmt.Sprintf("Your fee of %.2f is due today, %s.", remaining, due)
	case BucketThreeDaysAfter:
		subject = "Fee payment overdue"
		lead = fmt.Sprintf("Your fee of %.2f was due on %s and is now 3 days overdue.", remaining, due)
	case BucketSevenDaysAfter:
		subject = "Final notice: fee payment overdue"
		lead = fmt.Sprintf("Your fee of %.2f was due on %s and is now 7 days overdue. Please settle it urgently.", remaining, due)
	default:
		subject = "Fee payment reminder"
		lead = fmt.Sprintf("Your fee of %.2f is outstanding.", remaining)
	}

	html := fmt.Sprintf(
		`<p>Dear %s,</p>
<p>%s</p>
<p>Invoice: %s</p>
<p>You can pay by mobile money, bank transfer, card or cash at the office.</p>
<p>Akademiku Finance Office</p>`,
		s.StudentName, lead, describe(p))

	sms := fmt.Sprintf("Akademiku: %s", lead)

	return subject, html, sms
}

func describe(p *model.PaymentModel) string {
	if p.PaymentDescription != nil && *p.PaymentDescription != "" {
		return *p.PaymentDescription
	}
	return "monthly fee"
}

package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "akademiku_backend/internals/features/academy/students/model"
	"akademiku_backend/internals/features/finance/payments/dto"
	model "akademiku_backend/internals/features/finance/payments/model"
	notif "akademiku_backend/internals/features/notifications/service"
	"akademiku_backend/internals/helpers/errs"
)

/* =========================================================
   Payment Reconciler

   Verification = money received (manual marking or gateway
   confirmation). The state change is authoritative, the receipt
   notification is best effort.
========================================================= */

// ApplyVerification is the pure reducer over one payment row.
// Validation failures leave the row untouched.
func ApplyVerification(p *model.PaymentModel, req dto.VerifyPaymentRequest, now time.Time) error {
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		return errs.NewValidation("payment_method is required")
	}

	// Every method except cash must carry an external transaction id.
	ref := strings.TrimSpace(req.PaymentReference)
	if method != model.PaymentMethodCash && ref == "" {
		return errs.NewValidation("payment_reference is required for non-cash methods")
	}

	if p.IsCompleted() {
		return errs.NewValidation("payment is already completed")
	}

	var delta float64
	if req.Partial {
		if req.Amount <= 0 {
			return errs.NewValidation("partial amount must be greater than zero")
		}
		if req.Amount > p.RemainingBalance() {
			return errs.NewBalance(fmt.Sprintf(
				"partial amount %.2f exceeds remaining balance %.2f",
				req.Amount, p.RemainingBalance()))
		}
		delta = req.Amount
	} else {
		delta = p.RemainingBalance()
	}

	totalPaid := p.PaymentPaidAmount + delta
	if totalPaid > p.PaymentAmount {
		totalPaid = p.PaymentAmount
	}
	p.PaymentPaidAmount = totalPaid
	if totalPaid >= p.PaymentAmount {
		p.PaymentStatus = model.PaymentStatusCompleted
	}

	p.PaymentDate = &now
	label := methodLabel(method)
	p.PaymentDescription = &label
	if ref != "" {
		p.PaymentReference = &ref
	}
	return nil
}

func methodLabel(method string) string {
	switch method {
	case model.PaymentMethodCash:
		return "Cash"
	case model.PaymentMethodBankTransfer:
		return "Bank Transfer"
	case model.PaymentMethodMobileMoney:
		return "Mobile Money"
	case model.PaymentMethodCard:
		return "Card"
	default:
		lower := strings.ToLower(method)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}

// VerifyPayment loads the tenant-scoped row, applies the reducer,
// persists it and fires the receipt notification per channel.
func VerifyPayment(db *gorm.DB, notifier *notif.Notifier, academyID, paymentID uuid.UUID, req dto.VerifyPaymentRequest, now time.Time) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := db.
		Where("payment_id = ? AND payment_academy_id = ?", paymentID, academyID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFound("payment not found")
		}
		return nil, err
	}

	// Captured before the reducer: the receipt reports the delta applied
	// by this call and the invoice label the reducer overwrites.
	invoice := ""
	if p.PaymentDescription != nil {
		invoice = *p.PaymentDescription
	}
	prevPaid := p.PaymentPaidAmount

	if err := ApplyVerification(&p, req, now); err != nil {
		return nil, err
	}

	if err := db.Save(&p).Error; err != nil {
		return nil, err
	}

	syncStudentStatus(db, &p)
	notifyReceipt(db, notifier, &p, p.PaymentPaidAmount-prevPaid, invoice, now)
	return &p, nil
}

// BulkVerifyPayments marks a set of payments fully paid with one method
// and reference. No partial support; per-item failures are isolated.
func BulkVerifyPayments(db *gorm.DB, notifier *notif.Notifier, academyID uuid.UUID, req dto.BulkVerifyRequest, now time.Time) dto.BulkVerifyResult {
	var res dto.BulkVerifyResult
	res.Total = len(req.PaymentIDs)

	for _, id := range req.PaymentIDs {
		_, err := VerifyPayment(db, notifier, academyID, id, dto.VerifyPaymentRequest{
			PaymentMethod:    req.PaymentMethod,
			PaymentReference: req.PaymentReference,
		}, now)
		if err != nil {
			log.Printf("[ERROR] bulk verify: payment %s: %v", id, err)
			res.Failed++
			continue
		}
		res.Verified++
	}
	return res
}

/* ===================== internal ===================== */

// syncStudentStatus mirrors the invoice status onto the student row's
// cached payment_status. Failures only log.
func syncStudentStatus(db *gorm.DB, p *model.PaymentModel) {
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", p.PaymentStudentID).
		Update("student_payment_status", p.PaymentStatus).Error; err != nil {
		log.Printf("[WARN] reconciler: payment_status cache for student %s: %v", p.PaymentStudentID, err)
	}
}

// notifyReceipt sends the "payment received" message to every channel
// the student has. Fire and forget: failures never roll back the write.
func notifyReceipt(db *gorm.DB, notifier *notif.Notifier, p *model.PaymentModel, received float64, invoice string, now time.Time) {
	if notifier == nil {
		return
	}

	var s studentModel.StudentModel
	if err := db.Where("student_id = ?", p.PaymentStudentID).First(&s).Error; err != nil {
		log.Printf("[WARN] reconciler: student lookup for receipt: %v", err)
		return
	}

	subject, html, sms := ReceiptCopy(&s, p, received, invoice, now)
	notifier.Notify(s.EmailOrEmpty(), s.PhoneOrEmpty(), subject, html, sms)
}

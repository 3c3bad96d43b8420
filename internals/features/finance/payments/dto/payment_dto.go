package dto

import (
	"time"

	"github.com/google/uuid"

	model "akademiku_backend/internals/features/finance/payments/model"
)

/* ===================== Requests ===================== */

// VerifyPaymentRequest records money received against one invoice.
// Amount is the partial delta when Partial is true; ignored otherwise
// (full remaining balance is applied).
type VerifyPaymentRequest struct {
	PaymentMethod    string  `json:"payment_method" validate:"required"`
	Amount           float64 `json:"amount,omitempty"`
	Partial          bool    `json:"partial,omitempty"`
	PaymentReference string  `json:"payment_reference,omitempty"`
}

type BulkVerifyRequest struct {
	PaymentIDs       []uuid.UUID `json:"payment_ids" validate:"required,min=1"`
	PaymentMethod    string      `json:"payment_method" validate:"required"`
	PaymentReference string      `json:"payment_reference,omitempty"`
}

/* ===================== Responses ===================== */

type PaymentResponse struct {
	PaymentID             uuid.UUID      `json:"payment_id"`
	PaymentStudentID      uuid.UUID      `json:"payment_student_id"`
	PaymentAmount         float64        `json:"payment_amount"`
	PaymentPaidAmount     float64        `json:"payment_paid_amount"`
	PaymentDiscountAmount float64        `json:"payment_discount_amount"`
	PaymentRemaining      float64        `json:"payment_remaining"`
	PaymentPackageType    string         `json:"payment_package_type"`
	PaymentStatus         string         `json:"payment_status"`
	PaymentDueDate        *time.Time     `json:"payment_due_date,omitempty"`
	PaymentDate           *time.Time     `json:"payment_date,omitempty"`
	PaymentDescription    *string        `json:"payment_description,omitempty"`
	PaymentReference      *string        `json:"payment_reference,omitempty"`
	PaymentReminderSent   map[string]any `json:"payment_reminder_sent,omitempty"`
	PaymentCreatedAt      time.Time      `json:"payment_created_at"`
}

func FromModel(m model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		PaymentID:             m.PaymentID,
		PaymentStudentID:      m.PaymentStudentID,
		PaymentAmount:         m.PaymentAmount,
		PaymentPaidAmount:     m.PaymentPaidAmount,
		PaymentDiscountAmount: m.PaymentDiscountAmount,
		PaymentRemaining:      m.RemainingBalance(),
		PaymentPackageType:    m.PaymentPackageType,
		PaymentStatus:         m.PaymentStatus,
		PaymentDueDate:        m.PaymentDueDate,
		PaymentDate:           m.PaymentDate,
		PaymentDescription:    m.PaymentDescription,
		PaymentReference:      m.PaymentReference,
		PaymentReminderSent:   m.PaymentReminderSent,
		PaymentCreatedAt:      m.CreatedAt,
	}
}

func FromModels(ms []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

type GenerateResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

type BulkVerifyResult struct {
	Verified int `json:"verified"`
	Failed   int `json:"failed"`
	Total    int `json:"total"`
}

type ReminderResult struct {
	RemindersSent int `json:"reminders_sent"`
	Checked       int `json:"checked"`
	Failed        int `json:"failed"`
}

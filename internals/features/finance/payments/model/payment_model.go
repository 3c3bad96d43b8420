package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */
/* Matches the payment_status ENUM in PostgreSQL. */

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodCash         = "CASH"
	PaymentMethodBankTransfer = "BANK TRANSFER"
	PaymentMethodMobileMoney  = "MOBILE MONEY"
	PaymentMethodCard         = "CARD"
)

/* ===================== Model ===================== */

type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentAcademyID uuid.UUID `gorm:"column:payment_academy_id;type:uuid;not null;index:idx_payments_academy" json:"payment_academy_id"`
	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:idx_payments_student" json:"payment_student_id"`

	// Amounts. paid_amount grows with each partial verification and
	// never exceeds amount.
	PaymentAmount         float64 `gorm:"column:payment_amount;not null;check:payment_amount >= 0" json:"payment_amount"`
	PaymentPaidAmount     float64 `gorm:"column:payment_paid_amount;not null;default:0" json:"payment_paid_amount"`
	PaymentDiscountAmount float64 `gorm:"column:payment_discount_amount;not null;default:0" json:"payment_discount_amount"`

	PaymentPackageType string `gorm:"column:payment_package_type;type:varchar(32)" json:"payment_package_type"`

	PaymentStatus string `gorm:"column:payment_status;type:varchar(20);not null;default:'pending'" json:"payment_status"`

	PaymentDueDate *time.Time `gorm:"column:payment_due_date;type:date" json:"payment_due_date,omitempty"`
	PaymentDate    *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`

	// Holds the invoice label at creation, the payment method label
	// after verification.
	PaymentDescription *string `gorm:"column:payment_description" json:"payment_description,omitempty"`

	// External transaction id, required for every non-cash method.
	PaymentReference *string `gorm:"column:payment_reference" json:"payment_reference,omitempty"`

	// bucket name → RFC3339 timestamp of the reminder already fired
	PaymentReminderSent datatypes.JSONMap `gorm:"column:payment_reminder_sent;type:jsonb" json:"payment_reminder_sent,omitempty"`

	CreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime;index:idx_payments_created" json:"payment_created_at"`
	UpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"payment_deleted_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

/* ===================== Helpers ===================== */

func (p *PaymentModel) RemainingBalance() float64 {
	rem := p.PaymentAmount - p.PaymentPaidAmount
	if rem < 0 {
		return 0
	}
	return rem
}

func (p *PaymentModel) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}

// Outstanding: still owed money, reminder-eligible.
func (p *PaymentModel) IsOutstanding() bool {
	return p.PaymentStatus == PaymentStatusPending || p.PaymentStatus == PaymentStatusFailed
}

// ReminderFiredAt returns the stamp for a bucket, if that reminder has
// already gone out.
func (p *PaymentModel) ReminderFiredAt(bucket string) (string, bool) {
	if p.PaymentReminderSent == nil {
		return "", false
	}
	v, ok := p.PaymentReminderSent[bucket]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

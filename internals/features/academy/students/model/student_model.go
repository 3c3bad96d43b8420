package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	StudentPaymentStatusNone      = "none"
	StudentPaymentStatusPending   = "pending"
	StudentPaymentStatusCompleted = "completed"
	StudentPaymentStatusFailed    = "failed"
)

/* ===================== Model ===================== */

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	StudentAcademyID uuid.UUID `gorm:"column:student_academy_id;type:uuid;not null;index:idx_students_academy" json:"student_academy_id"`

	StudentName  string  `gorm:"column:student_name;type:text;not null" json:"student_name"`
	StudentEmail *string `gorm:"column:student_email;type:text" json:"student_email,omitempty"`
	StudentPhone *string `gorm:"column:student_phone;type:text" json:"student_phone,omitempty"`

	// Fee basis for the monthly invoice generator
	StudentPackageType        string  `gorm:"column:student_package_type;type:varchar(32)" json:"student_package_type"`
	StudentMonthlyFee         float64 `gorm:"column:student_monthly_fee;not null;default:0;check:student_monthly_fee >= 0" json:"student_monthly_fee"`
	StudentDiscountPercentage float64 `gorm:"column:student_discount_percentage;not null;default:0;check:student_discount_percentage >= 0 AND student_discount_percentage <= 100" json:"student_discount_percentage"`

	// Cached view of the latest invoice status, maintained by the
	// generator and reconciler
	StudentPaymentStatus string `gorm:"column:student_payment_status;type:varchar(20);not null;default:'none'" json:"student_payment_status"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	CreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	UpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

/* ===================== Helpers ===================== */

// DiscountAmount is the slice of the monthly fee the discount removes.
func (s *StudentModel) DiscountAmount() float64 {
	return s.StudentMonthlyFee * s.StudentDiscountPercentage / 100
}

// FinalMonthlyFee is what the student actually owes per month.
func (s *StudentModel) FinalMonthlyFee() float64 {
	return s.StudentMonthlyFee - s.DiscountAmount()
}

// Billable: only active students with a package and a positive fee get
// a monthly invoice.
func (s *StudentModel) Billable() bool {
	return s.StudentIsActive && s.StudentPackageType != "" && s.FinalMonthlyFee() > 0
}

func (s *StudentModel) EmailOrEmpty() string {
	if s.StudentEmail != nil {
		return *s.StudentEmail
	}
	return ""
}

func (s *StudentModel) PhoneOrEmpty() string {
	if s.StudentPhone != nil {
		return *s.StudentPhone
	}
	return ""
}

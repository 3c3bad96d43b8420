package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "akademiku_backend/internals/features/academy/students/model"
	model "akademiku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Persistence seam for the batch services (generator and
   reminder scheduler). Tests substitute an in-memory fake.
========================================================= */

type PaymentStore interface {
	// BillableStudents lists the academy's active students that carry a
	// package type. Fee and discount filtering stays in the caller.
	BillableStudents(academyID uuid.UUID) ([]studentModel.StudentModel, error)

	// HasPaymentInWindow reports whether the student already has an
	// invoice created inside [start, end).
	HasPaymentInWindow(studentID uuid.UUID, start, end time.Time) (bool, error)

	CreatePayment(p *model.PaymentModel) error

	// CacheStudentStatus mirrors an invoice status onto the student row.
	CacheStudentStatus(studentID uuid.UUID, status string) error

	// OutstandingPayments lists the academy's pending/failed payments
	// with a due date, optionally narrowed to one payment.
	OutstandingPayments(academyID uuid.UUID, paymentID *uuid.UUID) ([]model.PaymentModel, error)

	// SaveReminderState persists the reminder stamp and status together.
	SaveReminderState(p *model.PaymentModel) error

	StudentByID(studentID uuid.UUID) (*studentModel.StudentModel, error)
}

type gormPaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &gormPaymentStore{db: db}
}

func (s *gormPaymentStore) BillableStudents(academyID uuid.UUID) ([]studentModel.StudentModel, error) {
	var students []studentModel.StudentModel
	err := s.db.
		Where("student_academy_id = ?", academyID).
		Where("student_is_active = TRUE AND student_package_type <> ''").
		Find(&students).Error
	return students, err
}

func (s *gormPaymentStore) HasPaymentInWindow(studentID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&model.PaymentModel{}).
		Where("payment_student_id = ? AND payment_created_at >= ? AND payment_created_at < ?",
			studentID, start, end).
		Count(&count).Error
	return count > 0, err
}

func (s *gormPaymentStore) CreatePayment(p *model.PaymentModel) error {
	return s.db.Create(p).Error
}

func (s *gormPaymentStore) CacheStudentStatus(studentID uuid.UUID, status string) error {
	return s.db.Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Update("student_payment_status", status).Error
}

func (s *gormPaymentStore) OutstandingPayments(academyID uuid.UUID, paymentID *uuid.UUID) ([]model.PaymentModel, error) {
	q := s.db.
		Where("payment_academy_id = ?", academyID).
		Where("payment_status IN ?", []string{model.PaymentStatusPending, model.PaymentStatusFailed}).
		Where("payment_due_date IS NOT NULL")
	if paymentID != nil {
		q = q.Where("payment_id = ?", *paymentID)
	}

	var payments []model.PaymentModel
	err := q.Find(&payments).Error
	return payments, err
}

func (s *gormPaymentStore) SaveReminderState(p *model.PaymentModel) error {
	return s.db.Model(&model.PaymentModel{}).
		Where("payment_id = ?", p.PaymentID).
		Updates(map[string]interface{}{
			"payment_reminder_sent": p.PaymentReminderSent,
			"payment_status":        p.PaymentStatus,
		}).Error
}

func (s *gormPaymentStore) StudentByID(studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var st studentModel.StudentModel
	if err := s.db.Where("student_id = ?", studentID).First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

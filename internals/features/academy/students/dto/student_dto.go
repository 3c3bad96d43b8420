package dto

import (
	"github.com/google/uuid"

	model "akademiku_backend/internals/features/academy/students/model"
)

/* ===================== Requests ===================== */

type CreateStudentRequest struct {
	StudentName               string  `json:"student_name" validate:"required,min=2"`
	StudentEmail              *string `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentPhone              *string `json:"student_phone,omitempty"`
	StudentPackageType        string  `json:"student_package_type" validate:"required"`
	StudentMonthlyFee         float64 `json:"student_monthly_fee" validate:"gte=0"`
	StudentDiscountPercentage float64 `json:"student_discount_percentage" validate:"gte=0,lte=100"`
}

func (r *CreateStudentRequest) ToModel(academyID uuid.UUID) *model.StudentModel {
	return &model.StudentModel{
		StudentAcademyID:          academyID,
		StudentName:               r.StudentName,
		StudentEmail:              r.StudentEmail,
		StudentPhone:              r.StudentPhone,
		StudentPackageType:        r.StudentPackageType,
		StudentMonthlyFee:         r.StudentMonthlyFee,
		StudentDiscountPercentage: r.StudentDiscountPercentage,
		StudentPaymentStatus:      model.StudentPaymentStatusNone,
		StudentIsActive:           true,
	}
}

type UpdateStudentRequest struct {
	StudentName               *string  `json:"student_name,omitempty" validate:"omitempty,min=2"`
	StudentEmail              *string  `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentPhone              *string  `json:"student_phone,omitempty"`
	StudentPackageType        *string  `json:"student_package_type,omitempty"`
	StudentMonthlyFee         *float64 `json:"student_monthly_fee,omitempty" validate:"omitempty,gte=0"`
	StudentDiscountPercentage *float64 `json:"student_discount_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	StudentIsActive           *bool    `json:"student_is_active,omitempty"`
}

// Apply copies the non-nil fields onto the row.
func (r *UpdateStudentRequest) Apply(m *model.StudentModel) {
	if r.StudentName != nil {
		m.StudentName = *r.StudentName
	}
	if r.StudentEmail != nil {
		m.StudentEmail = r.StudentEmail
	}
	if r.StudentPhone != nil {
		m.StudentPhone = r.StudentPhone
	}
	if r.StudentPackageType != nil {
		m.StudentPackageType = *r.StudentPackageType
	}
	if r.StudentMonthlyFee != nil {
		m.StudentMonthlyFee = *r.StudentMonthlyFee
	}
	if r.StudentDiscountPercentage != nil {
		m.StudentDiscountPercentage = *r.StudentDiscountPercentage
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
}

/* ===================== Responses ===================== */

type StudentResponse struct {
	StudentID                 uuid.UUID `json:"student_id"`
	StudentName               string    `json:"student_name"`
	StudentEmail              *string   `json:"student_email,omitempty"`
	StudentPhone              *string   `json:"student_phone,omitempty"`
	StudentPackageType        string    `json:"student_package_type"`
	StudentMonthlyFee         float64   `json:"student_monthly_fee"`
	StudentDiscountPercentage float64   `json:"student_discount_percentage"`
	StudentFinalMonthlyFee    float64   `json:"student_final_monthly_fee"`
	StudentPaymentStatus      string    `json:"student_payment_status"`
	StudentIsActive           bool      `json:"student_is_active"`
}

func FromModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:                 m.StudentID,
		StudentName:               m.StudentName,
		StudentEmail:              m.StudentEmail,
		StudentPhone:              m.StudentPhone,
		StudentPackageType:        m.StudentPackageType,
		StudentMonthlyFee:         m.StudentMonthlyFee,
		StudentDiscountPercentage: m.StudentDiscountPercentage,
		StudentFinalMonthlyFee:    m.FinalMonthlyFee(),
		StudentPaymentStatus:      m.StudentPaymentStatus,
		StudentIsActive:           m.StudentIsActive,
	}
}

func FromModels(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

package academy

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "akademiku_backend/internals/features/academy/students/model"
)

type StudentSeed struct {
	AcademyID          string  `json:"academy_id"`
	Name               string  `json:"name"`
	Email              string  `json:"email,omitempty"`
	Phone              string  `json:"phone,omitempty"`
	PackageType        string  `json:"package_type"`
	MonthlyFee         float64 `json:"monthly_fee"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

// SeedStudentsFromJSON inserts students from a JSON fixture. A student
// is matched by (academy, name) so re-runs stay idempotent.
func SeedStudentsFromJSON(db *gorm.DB, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[WARN] seeds: cannot read %s: %v", filePath, err)
		return
	}

	var inputs []StudentSeed
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Printf("[ERROR] seeds: decode %s: %v", filePath, err)
		return
	}

	for _, in := range inputs {
		academyID, err := uuid.Parse(in.AcademyID)
		if err != nil {
			log.Printf("[ERROR] seeds: bad academy_id for '%s': %v", in.Name, err)
			continue
		}

		var existing model.StudentModel
		if err := db.
			Where("student_academy_id = ? AND student_name = ?", academyID, in.Name).
			First(&existing).Error; err == nil {
			log.Printf("[INFO] seeds: student '%s' already exists, skipped", in.Name)
			continue
		}

		s := model.StudentModel{
			StudentAcademyID:          academyID,
			StudentName:               in.Name,
			StudentPackageType:        in.PackageType,
			StudentMonthlyFee:         in.MonthlyFee,
			StudentDiscountPercentage: in.DiscountPercentage,
			StudentPaymentStatus:      model.StudentPaymentStatusNone,
			StudentIsActive:           true,
		}
		if in.Email != "" {
			s.StudentEmail = &in.Email
		}
		if in.Phone != "" {
			s.StudentPhone = &in.Phone
		}

		if err := db.Create(&s).Error; err != nil {
			log.Printf("[ERROR] seeds: insert student '%s': %v", in.Name, err)
			continue
		}
		log.Printf("[INFO] seeds: inserted student '%s'", in.Name)
	}
}

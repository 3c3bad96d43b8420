package users

import (
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	model "akademiku_backend/internals/features/users/model"
)

type UserSeed struct {
	AcademyID string `json:"academy_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// SeedUsersFromJSON inserts staff accounts from a JSON fixture, skipping
// emails that already exist.
func SeedUsersFromJSON(db *gorm.DB, filePath string) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[WARN] seeds: cannot read %s: %v", filePath, err)
		return
	}

	var inputs []UserSeed
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Printf("[ERROR] seeds: decode %s: %v", filePath, err)
		return
	}

	for _, in := range inputs {
		var existing model.UserModel
		if err := db.Where("user_email = ?", in.Email).First(&existing).Error; err == nil {
			log.Printf("[INFO] seeds: user '%s' already exists, skipped", in.Email)
			continue
		}

		academyID, err := uuid.Parse(in.AcademyID)
		if err != nil {
			log.Printf("[ERROR] seeds: bad academy_id for '%s': %v", in.Email, err)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[ERROR] seeds: hash password for '%s': %v", in.Email, err)
			continue
		}

		u := model.UserModel{
			UserAcademyID: academyID,
			UserName:      in.Name,
			UserEmail:     in.Email,
			UserPassword:  string(hash),
			UserRole:      in.Role,
			UserIsActive:  true,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("[ERROR] seeds: insert user '%s': %v", in.Email, err)
			continue
		}
		log.Printf("[INFO] seeds: inserted user '%s'", in.Email)
	}
}

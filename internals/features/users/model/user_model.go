package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	UserAcademyID uuid.UUID `gorm:"column:user_academy_id;type:uuid;not null;index:idx_users_academy" json:"user_academy_id"`

	UserName     string `gorm:"column:user_name;type:text;not null" json:"user_name"`
	UserEmail    string `gorm:"column:user_email;type:text;not null;uniqueIndex:uq_users_email" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:text;not null" json:"-"`
	UserRole     string `gorm:"column:user_role;type:varchar(20);not null;default:'staff'" json:"user_role"`

	UserIsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	CreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

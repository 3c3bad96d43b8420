package dto

import "github.com/google/uuid"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	UserID      uuid.UUID `json:"user_id"`
	AcademyID   uuid.UUID `json:"academy_id"`
	UserName    string    `json:"user_name"`
	Role        string    `json:"role"`
}

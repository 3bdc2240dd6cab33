package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone"`
	Password    string `json:"password" validate:"required,password_strength"`
	Role        string `json:"role" validate:"required,oneof=Customer Manager Admin"`
	Status      string `json:"status" validate:"required,oneof=Active Inactive Suspended"`
}

type UpdateUserDTO struct {
	Username    null.String `json:"username" validate:"omitempty,min=3,max=50"`
	Email       null.String `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber null.String `json:"phone_number" validate:"omitempty,phone"`
	Password    null.String `json:"password" validate:"omitempty,password_strength"`
	Role        null.String `json:"role" validate:"omitempty,oneof=Customer Manager Admin"`
	Status      null.String `json:"status" validate:"omitempty,oneof=Active Inactive Suspended"`
}

type UserDTO struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Role        string  `json:"role"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

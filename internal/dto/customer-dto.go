package dto

import "github.com/aarondl/null/v8"

type CreateCustomerDTO struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone"`
	Document    string `json:"document" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=200"`
}

type UpdateCustomerDTO struct {
	Name        null.String `json:"name" validate:"omitempty,min=1,max=100"`
	Email       null.String `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber null.String `json:"phone_number" validate:"omitempty,phone"`
	Document    null.String `json:"document" validate:"omitempty,max=20"`
	Address     null.String `json:"address" validate:"omitempty,max=200"`
	IsActive    null.Bool   `json:"is_active"`
}

type CustomerDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Document    *string `json:"document"`
	Address     *string `json:"address"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

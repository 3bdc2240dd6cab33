package dto

import "github.com/aarondl/null/v8"

type CreateBranchDTO struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone"`
}

type UpdateBranchDTO struct {
	Name        null.String `json:"name" validate:"omitempty,min=1,max=100"`
	Code        null.String `json:"code" validate:"omitempty,min=1,max=20"`
	Address     null.String `json:"address" validate:"omitempty,max=200"`
	PhoneNumber null.String `json:"phone_number" validate:"omitempty,phone"`
	IsActive    null.Bool   `json:"is_active"`
}

type BranchDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

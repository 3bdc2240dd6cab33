package entities

import (
	"github.com/google/uuid"

	"sales-system/pkg/types"
)

type Branch struct {
	ID          uuid.UUID
	Name        string
	Code        string
	Address     *string
	PhoneNumber *string
	IsActive    bool

	types.BaseEntity
}

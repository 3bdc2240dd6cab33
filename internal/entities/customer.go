package entities

import (
	"github.com/google/uuid"

	"sales-system/pkg/types"
)

type Customer struct {
	ID          uuid.UUID
	Name        string
	Email       string
	PhoneNumber *string
	Document    *string
	Address     *string
	IsActive    bool

	types.BaseEntity
}

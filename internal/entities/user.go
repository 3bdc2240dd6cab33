package entities

import (
	"github.com/google/uuid"

	"sales-system/pkg/types"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "Customer"
	UserRoleManager  UserRole = "Manager"
	UserRoleAdmin    UserRole = "Admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "Active"
	UserStatusInactive  UserStatus = "Inactive"
	UserStatusSuspended UserStatus = "Suspended"
)

type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	PhoneNumber *string
	Password    string
	Role        UserRole
	Status      UserStatus

	types.BaseEntity
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

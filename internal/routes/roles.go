package routes

import "sales-system/internal/entities"

var (
	staffRoles = []string{string(entities.UserRoleManager), string(entities.UserRoleAdmin)}
	adminRoles = []string{string(entities.UserRoleAdmin)}
)

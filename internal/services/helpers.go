package services

import "strings"

// optionalString превращает пустую строку в NULL.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

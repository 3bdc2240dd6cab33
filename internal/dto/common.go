package dto

// Форматы дат в запросах и ответах API.
const (
	TimeLayout = "2006-01-02T15:04:05Z07:00"
	DateLayout = "2006-01-02"
)

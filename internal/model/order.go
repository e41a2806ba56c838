package model

import (
	"time"
)

type Order struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	LessonIDs []string  `json:"lessonIds"` // request order, duplicates allowed
	OrderDate time.Time `json:"orderDate"`
}

// OrderRequest is the unvalidated input of the booking workflow.
type OrderRequest struct {
	Name      string
	Phone     string
	LessonIDs []string
}

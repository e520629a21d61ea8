package employee

import (
	"time"
)

type Employee struct {
	ID          string
	UserID      string
	CompanyID   string
	Designation string
	Department  string
	Shift       string
	CreatedAt   time.Time

	// Identity fields joined from users
	Name  string
	Email string
}

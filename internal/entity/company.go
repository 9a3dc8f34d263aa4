package entity

import (
	"github.com/google/uuid"
)

// db model, directory entry for a vendor
type Company struct {
	Id        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt string    `json:"createdAt" db:"created_at"`
}

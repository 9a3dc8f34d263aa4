package entity

import (
	"github.com/google/uuid"
)

// db model
type BidPackage struct {
	Id           uuid.UUID `json:"id" db:"id"`
	ProjectId    uuid.UUID `json:"projectId" db:"project_id"`
	Title        string    `json:"title" db:"title"`
	Trade        string    `json:"trade" db:"trade"`
	Scope        string    `json:"scope" db:"scope"`
	Instructions string    `json:"instructions" db:"instructions"`
	DueAt        *string   `json:"dueAt" db:"due_at"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreatePackageInput struct {
	ProjectId    string
	Title        string
	Trade        string
	Scope        string
	Instructions string
	DueAt        *string
	// Status set to "draft", Id and CreatedAt set automatically
}

type UpdatePackageInput struct {
	Title        string
	Trade        string
	Scope        string
	Instructions string
	DueAt        *string
}

// controller model
type PackageOutputModel struct {
	Id           string  `json:"id"`
	ProjectId    string  `json:"projectId"`
	Title        string  `json:"title"`
	Trade        string  `json:"trade"`
	Scope        string  `json:"scope"`
	Instructions string  `json:"instructions"`
	DueAt        *string `json:"dueAt,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"createdAt"`
}

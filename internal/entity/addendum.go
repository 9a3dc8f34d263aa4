package entity

import (
	"github.com/google/uuid"
)

// db model
type BidAddendum struct {
	Id           uuid.UUID `json:"id" db:"id"`
	BidPackageId uuid.UUID `json:"bidPackageId" db:"bid_package_id"`
	Number       int       `json:"number" db:"number"`
	Title        string    `json:"title" db:"title"`
	Message      string    `json:"message" db:"message"`
	IssuedAt     string    `json:"issuedAt" db:"issued_at"`
}

// service + repo input model
type IssueAddendumInput struct {
	BidPackageId string
	Title        string
	Message      string
	FileIds      []string
	// Number computed per package, IssuedAt set automatically
}

// controller model
type AddendumOutputModel struct {
	Id           string `json:"id"`
	BidPackageId string `json:"bidPackageId"`
	Number       int    `json:"number"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	IssuedAt     string `json:"issuedAt"`
}

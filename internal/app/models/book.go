package models

import "time"

// Book represents a title held in an institution's book inventory.
type Book struct {
	ID            int64     `json:"id"`
	InstitutionID int64     `json:"institutionId"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          string    `json:"isbn,omitempty"`
	Category      string    `json:"category"`
	Level         string    `json:"level"`
	Subject       string    `json:"subject,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	YearPublished int       `json:"yearPublished,omitempty"`
	Quantity      int       `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice,omitempty"`
	Condition     string    `json:"condition"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

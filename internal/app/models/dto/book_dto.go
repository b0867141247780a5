package dto

import "github.com/busiadev/ecdeavotmis/internal/app/models"

// CreateBookRequest represents the book inventory form
type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	ISBN          string  `json:"isbn,omitempty"`
	Category      string  `json:"category" binding:"required"`
	Level         string  `json:"level" binding:"required"`
	Subject       string  `json:"subject,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	YearPublished int     `json:"yearPublished,omitempty" binding:"omitempty,min=1900"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	UnitPrice     float64 `json:"unitPrice,omitempty" binding:"omitempty,gt=0"`
	Condition     string  `json:"condition,omitempty" binding:"omitempty,oneof=New Good Fair Worn"`
}

// UpdateBookRequest represents the editable book fields
type UpdateBookRequest struct {
	Title         string  `json:"title" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	ISBN          string  `json:"isbn,omitempty"`
	Category      string  `json:"category" binding:"required"`
	Level         string  `json:"level" binding:"required"`
	Subject       string  `json:"subject,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	YearPublished int     `json:"yearPublished,omitempty" binding:"omitempty,min=1900"`
	Quantity      int     `json:"quantity" binding:"required,min=1"`
	UnitPrice     float64 `json:"unitPrice,omitempty" binding:"omitempty,gt=0"`
	Condition     string  `json:"condition,omitempty" binding:"omitempty,oneof=New Good Fair Worn"`
	Status        string  `json:"status,omitempty" binding:"omitempty,oneof=Available Issued Lost Damaged"`
}

// BookFilterRequest represents the book inventory filter controls
type BookFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Level    string `form:"level"`
	Status   string `form:"status"`
}

// BookResponse represents book inventory information
type BookResponse struct {
	ID            int64   `json:"id"`
	InstitutionID int64   `json:"institutionId"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ISBN          string  `json:"isbn,omitempty"`
	Category      string  `json:"category"`
	Level         string  `json:"level"`
	Subject       string  `json:"subject,omitempty"`
	Publisher     string  `json:"publisher,omitempty"`
	YearPublished int     `json:"yearPublished,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice,omitempty"`
	Condition     string  `json:"condition"`
	Status        string  `json:"status"`
}

// BookListResponse represents a paginated book inventory page
type BookListResponse struct {
	Books      []BookResponse `json:"books"`
	Pagination PaginationInfo `json:"pagination"`
}

// FromBook converts a models.Book to a BookResponse
func FromBook(book *models.Book) BookResponse {
	if book == nil {
		return BookResponse{}
	}

	return BookResponse{
		ID:            book.ID,
		InstitutionID: book.InstitutionID,
		Title:         book.Title,
		Author:        book.Author,
		ISBN:          book.ISBN,
		Category:      book.Category,
		Level:         book.Level,
		Subject:       book.Subject,
		Publisher:     book.Publisher,
		YearPublished: book.YearPublished,
		Quantity:      book.Quantity,
		UnitPrice:     book.UnitPrice,
		Condition:     book.Condition,
		Status:        book.Status,
	}
}

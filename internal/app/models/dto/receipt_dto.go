package dto

import (
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
)

// UploadReceiptRequest represents the multipart form fields accompanying a
// capitation receipt file
type UploadReceiptRequest struct {
	ReceiptNumber string  `form:"receiptNumber" binding:"required"`
	Amount        float64 `form:"amount" binding:"required,gt=0"`
	ReceivedDate  string  `form:"receivedDate" binding:"required,datetime=2006-01-02"`
	AcademicYear  string  `form:"academicYear" binding:"required"`
	Term          string  `form:"term" binding:"required,oneof=TERM_1 TERM_2 TERM_3"`
	Description   string  `form:"description,omitempty"`
}

// ReceiptFilterRequest represents the receipt register filter controls
type ReceiptFilterRequest struct {
	Search       string `form:"search"`
	AcademicYear string `form:"academicYear"`
	Term         string `form:"term"`
	Status       string `form:"status"`
}

// ReceiptResponse represents capitation receipt information
type ReceiptResponse struct {
	ID            int64      `json:"id"`
	InstitutionID int64      `json:"institutionId"`
	ReceiptNumber string     `json:"receiptNumber"`
	Amount        float64    `json:"amount"`
	ReceivedDate  string     `json:"receivedDate"`
	AcademicYear  string     `json:"academicYear"`
	Term          string     `json:"term"`
	Description   string     `json:"description,omitempty"`
	FileName      string     `json:"fileName"`
	FileURL       string     `json:"fileUrl"`
	Status        string     `json:"status"`
	UploadedBy    int64      `json:"uploadedBy"`
	VerifiedBy    *int64     `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ReceiptListResponse represents a paginated receipt register page
type ReceiptListResponse struct {
	Receipts   []ReceiptResponse `json:"receipts"`
	Pagination PaginationInfo    `json:"pagination"`
}

// FromReceipt converts a models.CapitationReceipt to a ReceiptResponse.
// The file URL is served from the uploads static route.
func FromReceipt(receipt *models.CapitationReceipt) ReceiptResponse {
	if receipt == nil {
		return ReceiptResponse{}
	}

	return ReceiptResponse{
		ID:            receipt.ID,
		InstitutionID: receipt.InstitutionID,
		ReceiptNumber: receipt.ReceiptNumber,
		Amount:        receipt.Amount,
		ReceivedDate:  receipt.ReceivedDate.Format("2006-01-02"),
		AcademicYear:  receipt.AcademicYear,
		Term:          receipt.Term,
		Description:   receipt.Description,
		FileName:      receipt.FileName,
		FileURL:       receipt.FilePath,
		Status:        string(receipt.Status),
		UploadedBy:    receipt.UploadedBy,
		VerifiedBy:    receipt.VerifiedBy,
		VerifiedAt:    receipt.VerifiedAt,
		CreatedAt:     receipt.CreatedAt,
	}
}

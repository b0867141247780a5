package models

import "time"

// CapitationReceipt represents an uploaded proof of receipt for a
// capitation grant disbursement. Receipts start out PENDING and are
// marked VERIFIED by a county admin.
type CapitationReceipt struct {
	ID            int64         `json:"id"`
	InstitutionID int64         `json:"institutionId"`
	ReceiptNumber string        `json:"receiptNumber"`
	Amount        float64       `json:"amount"`
	ReceivedDate  time.Time     `json:"receivedDate"`
	AcademicYear  string        `json:"academicYear"`
	Term          string        `json:"term"`
	Description   string        `json:"description,omitempty"`
	FilePath      string        `json:"-"`
	FileName      string        `json:"fileName"`
	Status        ReceiptStatus `json:"status"`
	UploadedBy    int64         `json:"uploadedBy"`
	VerifiedBy    *int64        `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time    `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

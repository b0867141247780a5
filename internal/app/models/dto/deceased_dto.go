package dto

import (
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
)

// CreateDeceasedRecordRequest represents the deceased learner report form
type CreateDeceasedRecordRequest struct {
	LearnerID         int64  `json:"learnerId" binding:"required,min=1"`
	DateOfDeath       string `json:"dateOfDeath" binding:"required,datetime=2006-01-02"`
	CauseOfDeath      string `json:"causeOfDeath" binding:"required"`
	PlaceOfDeath      string `json:"placeOfDeath,omitempty"`
	ReportedBy        string `json:"reportedBy" binding:"required"`
	ReporterRelation  string `json:"reporterRelation,omitempty"`
	ReporterContact   string `json:"reporterContact,omitempty"`
	CertificateNumber string `json:"certificateNumber,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// DeceasedFilterRequest represents the deceased records filter controls
type DeceasedFilterRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Year   string `form:"year"`
}

// DeceasedRecordResponse represents a deceased learner record with the
// learner's details joined in
type DeceasedRecordResponse struct {
	ID                int64            `json:"id"`
	LearnerID         int64            `json:"learnerId"`
	InstitutionID     int64            `json:"institutionId"`
	DateOfDeath       string           `json:"dateOfDeath"`
	CauseOfDeath      string           `json:"causeOfDeath"`
	PlaceOfDeath      string           `json:"placeOfDeath,omitempty"`
	ReportedBy        string           `json:"reportedBy"`
	ReporterRelation  string           `json:"reporterRelation,omitempty"`
	ReporterContact   string           `json:"reporterContact,omitempty"`
	CertificateNumber string           `json:"certificateNumber,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Status            string           `json:"status"`
	RecordedAt        time.Time        `json:"recordedAt"`
	Learner           *LearnerResponse `json:"learner,omitempty"`
}

// DeceasedRecordListResponse represents a paginated deceased records page
type DeceasedRecordListResponse struct {
	Records    []DeceasedRecordResponse `json:"records"`
	Pagination PaginationInfo           `json:"pagination"`
}

// FromDeceasedRecord converts a models.DeceasedRecord to a response DTO
func FromDeceasedRecord(record *models.DeceasedRecord) DeceasedRecordResponse {
	if record == nil {
		return DeceasedRecordResponse{}
	}

	resp := DeceasedRecordResponse{
		ID:                record.ID,
		LearnerID:         record.LearnerID,
		InstitutionID:     record.InstitutionID,
		DateOfDeath:       record.DateOfDeath.Format("2006-01-02"),
		CauseOfDeath:      record.CauseOfDeath,
		PlaceOfDeath:      record.PlaceOfDeath,
		ReportedBy:        record.ReportedBy,
		ReporterRelation:  record.ReporterRelation,
		ReporterContact:   record.ReporterContact,
		CertificateNumber: record.CertificateNumber,
		Notes:             record.Notes,
		Status:            string(record.Status),
		RecordedAt:        record.RecordedAt,
	}

	if record.Learner != nil {
		learner := FromLearner(record.Learner)
		resp.Learner = &learner
	}

	return resp
}

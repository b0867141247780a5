package models

import "time"

// DeceasedRecordStatus defines the review state of a deceased record.
type DeceasedRecordStatus string

const (
	DeceasedRecordPending   DeceasedRecordStatus = "PENDING"
	DeceasedRecordConfirmed DeceasedRecordStatus = "CONFIRMED"
)

// DeceasedRecord documents the death of a learner. Creating one also
// moves the learner to the DECEASED status.
type DeceasedRecord struct {
	ID                int64                `json:"id"`
	LearnerID         int64                `json:"learnerId"`
	InstitutionID     int64                `json:"institutionId"`
	DateOfDeath       time.Time            `json:"dateOfDeath"`
	CauseOfDeath      string               `json:"causeOfDeath"`
	PlaceOfDeath      string               `json:"placeOfDeath,omitempty"`
	ReportedBy        string               `json:"reportedBy"`
	ReporterRelation  string               `json:"reporterRelation,omitempty"`
	ReporterContact   string               `json:"reporterContact,omitempty"`
	CertificateNumber string               `json:"certificateNumber,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	Status            DeceasedRecordStatus `json:"status"`
	RecordedAt        time.Time            `json:"recordedAt"`

	// Learner carries the joined learner row on read paths.
	Learner *Learner `json:"learner,omitempty"`
}

package models

import "time"

// Learner represents an enrolled child or trainee. The UPI (Unique
// Personal Identifier) is unique across the county.
type Learner struct {
	ID            int64         `json:"id"`
	InstitutionID int64         `json:"institutionId"`
	UPI           string        `json:"upi"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	OtherName     string        `json:"otherName,omitempty"`
	Gender        string        `json:"gender"`
	DateOfBirth   time.Time     `json:"dateOfBirth"`
	ProgramType   ProgramType   `json:"programType"`
	Course        string        `json:"course"`
	Level         string        `json:"level,omitempty"`
	ClassName     string        `json:"className,omitempty"`
	AdmissionDate time.Time     `json:"admissionDate"`
	Status        LearnerStatus `json:"status"`
	GuardianName  string        `json:"guardianName,omitempty"`
	GuardianPhone string        `json:"guardianPhone,omitempty"`
	Address       string        `json:"address,omitempty"`
	Attendance    int           `json:"attendance"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// FullName returns the learner's display name.
func (l *Learner) FullName() string {
	name := l.FirstName + " " + l.LastName
	if l.OtherName != "" {
		name += " " + l.OtherName
	}
	return name
}

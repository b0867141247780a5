package models

import "time"

// Institution represents an ECDE centre or vocational training centre
// registered with the county.
type Institution struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Type           ProgramType `json:"type"`
	Level          string      `json:"level"`
	RegistrationNo string      `json:"registrationNo"`
	County         string      `json:"county"`
	SubCounty      string      `json:"subCounty"`
	Ward           string      `json:"ward"`
	Address        string      `json:"address,omitempty"`
	Phone          string      `json:"phone,omitempty"`
	Email          string      `json:"email,omitempty"`
	PrincipalName  string      `json:"principalName,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

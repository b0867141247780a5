package models

import "time"

// InfrastructureAsset represents a physical asset belonging to an
// institution, such as a classroom block, latrine or water tank.
type InfrastructureAsset struct {
	ID              int64     `json:"id"`
	InstitutionID   int64     `json:"institutionId"`
	Name            string    `json:"name"`
	AssetType       string    `json:"assetType"`
	Classification  string    `json:"classification"`
	AcquisitionYear int       `json:"acquisitionYear"`
	Quantity        int       `json:"quantity"`
	EstimatedCost   float64   `json:"estimatedCost,omitempty"`
	Condition       string    `json:"condition"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

package dto

import "github.com/busiadev/ecdeavotmis/internal/app/models"

// CreateAssetRequest represents the infrastructure asset form
type CreateAssetRequest struct {
	Name            string  `json:"name" binding:"required"`
	AssetType       string  `json:"assetType" binding:"required"`
	Classification  string  `json:"classification" binding:"required"`
	AcquisitionYear int     `json:"acquisitionYear" binding:"required,min=1960"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	EstimatedCost   float64 `json:"estimatedCost,omitempty" binding:"omitempty,gt=0"`
	Condition       string  `json:"condition" binding:"required,oneof=GOOD FAIR POOR CONDEMNED"`
}

// UpdateAssetRequest represents the editable asset fields
type UpdateAssetRequest struct {
	Name            string  `json:"name" binding:"required"`
	AssetType       string  `json:"assetType" binding:"required"`
	Classification  string  `json:"classification" binding:"required"`
	AcquisitionYear int     `json:"acquisitionYear" binding:"required,min=1960"`
	Quantity        int     `json:"quantity" binding:"required,min=1"`
	EstimatedCost   float64 `json:"estimatedCost,omitempty" binding:"omitempty,gt=0"`
	Condition       string  `json:"condition" binding:"required,oneof=GOOD FAIR POOR CONDEMNED"`
}

// AssetFilterRequest represents the asset register filter controls
type AssetFilterRequest struct {
	Search         string `form:"search"`
	AssetType      string `form:"assetType"`
	Classification string `form:"classification"`
	Condition      string `form:"condition"`
}

// AssetResponse represents infrastructure asset information
type AssetResponse struct {
	ID              int64   `json:"id"`
	InstitutionID   int64   `json:"institutionId"`
	Name            string  `json:"name"`
	AssetType       string  `json:"assetType"`
	Classification  string  `json:"classification"`
	AcquisitionYear int     `json:"acquisitionYear"`
	Quantity        int     `json:"quantity"`
	EstimatedCost   float64 `json:"estimatedCost,omitempty"`
	Condition       string  `json:"condition"`
}

// AssetListResponse represents a paginated asset register page
type AssetListResponse struct {
	Assets     []AssetResponse `json:"assets"`
	Pagination PaginationInfo  `json:"pagination"`
}

// FromAsset converts a models.InfrastructureAsset to an AssetResponse
func FromAsset(asset *models.InfrastructureAsset) AssetResponse {
	if asset == nil {
		return AssetResponse{}
	}

	return AssetResponse{
		ID:              asset.ID,
		InstitutionID:   asset.InstitutionID,
		Name:            asset.Name,
		AssetType:       asset.AssetType,
		Classification:  asset.Classification,
		AcquisitionYear: asset.AcquisitionYear,
		Quantity:        asset.Quantity,
		EstimatedCost:   asset.EstimatedCost,
		Condition:       asset.Condition,
	}
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/query"
)

// assetStore is the asset persistence the service depends on.
type assetStore interface {
	Create(ctx context.Context, asset *models.InfrastructureAsset) error
	GetByID(ctx context.Context, id int64) (*models.InfrastructureAsset, error)
	GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.InfrastructureAsset, error)
	Update(ctx context.Context, asset *models.InfrastructureAsset) error
	Delete(ctx context.Context, id int64) error
}

var assetFilter = query.Definition[*models.InfrastructureAsset]{
	SearchFields: []func(*models.InfrastructureAsset) string{
		func(a *models.InfrastructureAsset) string { return a.Name },
		func(a *models.InfrastructureAsset) string { return a.AssetType },
	},
	Selectors: []query.Selector[*models.InfrastructureAsset]{
		{Name: "assetType", Value: func(a *models.InfrastructureAsset) string { return a.AssetType }, Fold: true},
		{Name: "classification", Value: func(a *models.InfrastructureAsset) string { return a.Classification }, Fold: true},
		{Name: "condition", Value: func(a *models.InfrastructureAsset) string { return a.Condition }, Fold: true},
	},
}

// AssetService defines the interface for infrastructure asset operations
type AssetService interface {
	CreateAsset(ctx context.Context, institutionID int64, req *dto.CreateAssetRequest) (*models.InfrastructureAsset, error)
	GetAssetByID(ctx context.Context, institutionID, id int64) (*models.InfrastructureAsset, error)
	ListAssets(ctx context.Context, institutionID int64, filter *dto.AssetFilterRequest, page, size int) ([]*models.InfrastructureAsset, dto.PaginationInfo, error)
	UpdateAsset(ctx context.Context, institutionID, id int64, req *dto.UpdateAssetRequest) (*models.InfrastructureAsset, error)
	DeleteAsset(ctx context.Context, institutionID, id int64) error
}

// assetServiceImpl implements the AssetService interface
type assetServiceImpl struct {
	store assetStore
}

// NewAssetService creates a new asset service instance
func NewAssetService(store assetStore) AssetService {
	return &assetServiceImpl{
		store: store,
	}
}

// CreateAsset records a new infrastructure asset
func (s *assetServiceImpl) CreateAsset(ctx context.Context, institutionID int64, req *dto.CreateAssetRequest) (*models.InfrastructureAsset, error) {
	if err := validateAssetFields(req.Name, req.AssetType, req.Classification, req.Quantity); err != nil {
		return nil, err
	}

	asset := &models.InfrastructureAsset{
		InstitutionID:   institutionID,
		Name:            strings.TrimSpace(req.Name),
		AssetType:       strings.TrimSpace(req.AssetType),
		Classification:  strings.TrimSpace(req.Classification),
		AcquisitionYear: req.AcquisitionYear,
		Quantity:        req.Quantity,
		EstimatedCost:   req.EstimatedCost,
		Condition:       req.Condition,
	}

	if err := s.store.Create(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// GetAssetByID retrieves one asset
func (s *assetServiceImpl) GetAssetByID(ctx context.Context, institutionID, id int64) (*models.InfrastructureAsset, error) {
	asset, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.InstitutionID != institutionID {
		return nil, apperrors.ErrAssetNotFound
	}
	return asset, nil
}

// ListAssets loads the institution's asset register, filters it in memory
// and returns one page
func (s *assetServiceImpl) ListAssets(ctx context.Context, institutionID int64, filter *dto.AssetFilterRequest, page, size int) ([]*models.InfrastructureAsset, dto.PaginationInfo, error) {
	assets, err := s.store.GetAllByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["assetType"] = filter.AssetType
		filters["classification"] = filter.Classification
		filters["condition"] = filter.Condition
	}

	matched := assetFilter.Apply(assets, search, filters)

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

// UpdateAsset updates an existing asset
func (s *assetServiceImpl) UpdateAsset(ctx context.Context, institutionID, id int64, req *dto.UpdateAssetRequest) (*models.InfrastructureAsset, error) {
	if err := validateAssetFields(req.Name, req.AssetType, req.Classification, req.Quantity); err != nil {
		return nil, err
	}

	asset, err := s.GetAssetByID(ctx, institutionID, id)
	if err != nil {
		return nil, err
	}

	asset.Name = strings.TrimSpace(req.Name)
	asset.AssetType = strings.TrimSpace(req.AssetType)
	asset.Classification = strings.TrimSpace(req.Classification)
	asset.AcquisitionYear = req.AcquisitionYear
	asset.Quantity = req.Quantity
	asset.EstimatedCost = req.EstimatedCost
	asset.Condition = req.Condition

	if err := s.store.Update(ctx, asset); err != nil {
		return nil, err
	}

	return asset, nil
}

// DeleteAsset removes an asset from the register
func (s *assetServiceImpl) DeleteAsset(ctx context.Context, institutionID, id int64) error {
	if _, err := s.GetAssetByID(ctx, institutionID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func validateAssetFields(name, assetType, classification string, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(assetType) == "" {
		return fmt.Errorf("%w: asset type cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(classification) == "" {
		return fmt.Errorf("%w: classification cannot be empty", apperrors.ErrValidationFailed)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidationFailed)
	}
	return nil
}

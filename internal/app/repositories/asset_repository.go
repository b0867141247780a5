package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

// AssetRepository handles database operations for infrastructure assets
type AssetRepository struct {
	db *pgxpool.Pool
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{
		db: db,
	}
}

// Create creates a new infrastructure asset
func (r *AssetRepository) Create(ctx context.Context, asset *models.InfrastructureAsset) error {
	query := `
		INSERT INTO infrastructure_assets (institution_id, name, asset_type, classification,
			acquisition_year, quantity, estimated_cost, condition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		asset.InstitutionID,
		asset.Name,
		asset.AssetType,
		asset.Classification,
		asset.AcquisitionYear,
		asset.Quantity,
		asset.EstimatedCost,
		asset.Condition,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating asset: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by ID
func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*models.InfrastructureAsset, error) {
	query := `
		SELECT id, institution_id, name, asset_type, classification,
		       acquisition_year, quantity, COALESCE(estimated_cost, 0), condition,
		       created_at, updated_at
		FROM infrastructure_assets
		WHERE id = $1
	`

	var asset models.InfrastructureAsset
	err := r.db.QueryRow(ctx, query, id).Scan(
		&asset.ID,
		&asset.InstitutionID,
		&asset.Name,
		&asset.AssetType,
		&asset.Classification,
		&asset.AcquisitionYear,
		&asset.Quantity,
		&asset.EstimatedCost,
		&asset.Condition,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, fmt.Errorf("error retrieving asset: %w", err)
	}

	return &asset, nil
}

// GetAllByInstitution retrieves all assets of an institution in insertion
// order
func (r *AssetRepository) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.InfrastructureAsset, error) {
	query := `
		SELECT id, institution_id, name, asset_type, classification,
		       acquisition_year, quantity, COALESCE(estimated_cost, 0), condition,
		       created_at, updated_at
		FROM infrastructure_assets
		WHERE institution_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []*models.InfrastructureAsset
	for rows.Next() {
		var asset models.InfrastructureAsset
		if err := rows.Scan(
			&asset.ID,
			&asset.InstitutionID,
			&asset.Name,
			&asset.AssetType,
			&asset.Classification,
			&asset.AcquisitionYear,
			&asset.Quantity,
			&asset.EstimatedCost,
			&asset.Condition,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assets = append(assets, &asset)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assets, nil
}

// Update updates an existing asset
func (r *AssetRepository) Update(ctx context.Context, asset *models.InfrastructureAsset) error {
	query := `
		UPDATE infrastructure_assets
		SET name = $1, asset_type = $2, classification = $3, acquisition_year = $4,
		    quantity = $5, estimated_cost = $6, condition = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		asset.Name,
		asset.AssetType,
		asset.Classification,
		asset.AcquisitionYear,
		asset.Quantity,
		asset.EstimatedCost,
		asset.Condition,
		asset.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating asset: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// Delete deletes an asset by ID
func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM infrastructure_assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting asset: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// CountByInstitution returns the number of assets of an institution
func (r *AssetRepository) CountByInstitution(ctx context.Context, institutionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM infrastructure_assets WHERE institution_id = $1`,
		institutionID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting assets: %w", err)
	}

	return count, nil
}

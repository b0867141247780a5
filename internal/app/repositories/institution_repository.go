package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/db"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/dberrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// InstitutionRepository handles database operations for institutions
type InstitutionRepository struct {
	db *pgxpool.Pool
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
	}
}

// Create creates a new institution
func (r *InstitutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (name, type, level, registration_no, county, sub_county, ward, address, phone, email, principal_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		institution.Name,
		institution.Type,
		institution.Level,
		institution.RegistrationNo,
		institution.County,
		helpers.GetContentNullString(institution.SubCounty),
		helpers.GetContentNullString(institution.Ward),
		helpers.GetContentNullString(institution.Address),
		helpers.GetContentNullString(institution.Phone),
		helpers.GetContentNullString(institution.Email),
		helpers.GetContentNullString(institution.PrincipalName),
	).Scan(&institution.ID, &institution.CreatedAt, &institution.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "institutions_registration_no_key") {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error creating institution: %w", err)
	}

	return nil
}

// CreateWithAdmin creates an institution and binds the given profile to it
// as its institution admin, all within one transaction.
func (r *InstitutionRepository) CreateWithAdmin(ctx context.Context, institution *models.Institution, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO institutions (name, type, level, registration_no, county, sub_county, ward, address, phone, email, principal_name)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			institution.Name,
			institution.Type,
			institution.Level,
			institution.RegistrationNo,
			institution.County,
			helpers.GetContentNullString(institution.SubCounty),
			helpers.GetContentNullString(institution.Ward),
			helpers.GetContentNullString(institution.Address),
			helpers.GetContentNullString(institution.Phone),
			helpers.GetContentNullString(institution.Email),
			helpers.GetContentNullString(institution.PrincipalName),
		).Scan(&institution.ID, &institution.CreatedAt, &institution.UpdatedAt)

		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "institutions_registration_no_key") {
				return apperrors.ErrInstitutionAlreadyExists
			}
			return fmt.Errorf("error creating institution: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE profiles SET institution_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			institution.ID, userID)
		if err != nil {
			return fmt.Errorf("error binding profile to institution: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role)
			VALUES ($1, $2)
			ON CONFLICT (user_id, role) DO NOTHING`,
			userID, models.RoleInstitutionAdmin)
		if err != nil {
			return fmt.Errorf("error granting institution admin role: %w", err)
		}

		return nil
	})
}

// GetByID retrieves an institution by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := `
		SELECT id, name, type, level, registration_no, county,
		       COALESCE(sub_county, ''), COALESCE(ward, ''), COALESCE(address, ''),
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(principal_name, ''),
		       created_at, updated_at
		FROM institutions
		WHERE id = $1
	`

	var institution models.Institution
	err := r.db.QueryRow(ctx, query, id).Scan(
		&institution.ID,
		&institution.Name,
		&institution.Type,
		&institution.Level,
		&institution.RegistrationNo,
		&institution.County,
		&institution.SubCounty,
		&institution.Ward,
		&institution.Address,
		&institution.Phone,
		&institution.Email,
		&institution.PrincipalName,
		&institution.CreatedAt,
		&institution.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}

	return &institution, nil
}

// GetAll retrieves all institutions ordered by name
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	query := `
		SELECT id, name, type, level, registration_no, county,
		       COALESCE(sub_county, ''), COALESCE(ward, ''), COALESCE(address, ''),
		       COALESCE(phone, ''), COALESCE(email, ''), COALESCE(principal_name, ''),
		       created_at, updated_at
		FROM institutions
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		var institution models.Institution
		if err := rows.Scan(
			&institution.ID,
			&institution.Name,
			&institution.Type,
			&institution.Level,
			&institution.RegistrationNo,
			&institution.County,
			&institution.SubCounty,
			&institution.Ward,
			&institution.Address,
			&institution.Phone,
			&institution.Email,
			&institution.PrincipalName,
			&institution.CreatedAt,
			&institution.UpdatedAt,
		); err != nil {
			return nil, err
		}
		institutions = append(institutions, &institution)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return institutions, nil
}

// ExistsByRegistrationNo checks if an institution exists with the given
// registration number
func (r *InstitutionRepository) ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM institutions WHERE registration_no = $1)`,
		registrationNo).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking institution existence: %w", err)
	}

	return exists, nil
}

// Update updates an existing institution's editable fields
func (r *InstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `
		UPDATE institutions
		SET name = $1, level = $2, sub_county = $3, ward = $4, address = $5,
		    phone = $6, email = $7, principal_name = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		institution.Name,
		institution.Level,
		helpers.GetContentNullString(institution.SubCounty),
		helpers.GetContentNullString(institution.Ward),
		helpers.GetContentNullString(institution.Address),
		helpers.GetContentNullString(institution.Phone),
		helpers.GetContentNullString(institution.Email),
		helpers.GetContentNullString(institution.PrincipalName),
		institution.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating institution: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

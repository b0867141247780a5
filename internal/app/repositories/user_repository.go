package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/dberrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

// UserRepository handles database operations for profiles and roles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUser creates a new profile row
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO profiles (email, password, first_name, last_name, phone, institution_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.FirstName,
		user.LastName,
		helpers.GetContentNullString(user.Phone),
		user.InstitutionID,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a profile by ID, including roles
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, COALESCE(phone, ''),
		       institution_id, is_active, last_login_at, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a profile by email, including roles
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, COALESCE(phone, ''),
		       institution_id, is_active, last_login_at, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EmailExists checks if a profile exists with the given email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates a profile's editable fields
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, phone = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		helpers.GetContentNullString(user.Phone),
		user.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the profile's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE profiles SET last_login_at = $1 WHERE id = $2`,
		time.Now(), userID)

	if err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// AddRole grants a role to a profile. Granting an already held role is a
// no-op.
func (r *UserRepository) AddRole(ctx context.Context, userID int64, role models.Role) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING`,
		userID, role)

	if err != nil {
		return fmt.Errorf("error adding role: %w", err)
	}

	return nil
}

// HasRole checks whether a profile holds the given role
func (r *UserRepository) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`,
		userID, role).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return exists, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.InstitutionID,
		&user.IsActive,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

func (r *UserRepository) loadRoles(ctx context.Context, user *models.User) error {
	rows, err := r.db.Query(ctx, `
		SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`,
		user.ID)
	if err != nil {
		return fmt.Errorf("error loading roles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role); err != nil {
			return err
		}
		user.Roles = append(user.Roles, role)
	}

	return rows.Err()
}

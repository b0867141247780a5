package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/dberrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
)

const learnerColumns = `
	id, institution_id, upi, first_name, last_name, COALESCE(other_name, ''),
	gender, date_of_birth, program_type, course, COALESCE(level, ''),
	COALESCE(class_name, ''), admission_date, status, COALESCE(guardian_name, ''),
	COALESCE(guardian_phone, ''), COALESCE(address, ''), attendance,
	created_at, updated_at`

// LearnerRepository handles database operations for learners
type LearnerRepository struct {
	db *pgxpool.Pool
}

// NewLearnerRepository creates a new learner repository
func NewLearnerRepository(db *pgxpool.Pool) *LearnerRepository {
	return &LearnerRepository{
		db: db,
	}
}

// Create creates a new learner
func (r *LearnerRepository) Create(ctx context.Context, learner *models.Learner) error {
	query := `
		INSERT INTO learners (institution_id, upi, first_name, last_name, other_name,
			gender, date_of_birth, program_type, course, level, class_name,
			admission_date, status, guardian_name, guardian_phone, address, attendance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		learner.InstitutionID,
		learner.UPI,
		learner.FirstName,
		learner.LastName,
		helpers.GetContentNullString(learner.OtherName),
		learner.Gender,
		learner.DateOfBirth,
		learner.ProgramType,
		learner.Course,
		helpers.GetContentNullString(learner.Level),
		helpers.GetContentNullString(learner.ClassName),
		learner.AdmissionDate,
		learner.Status,
		helpers.GetContentNullString(learner.GuardianName),
		helpers.GetContentNullString(learner.GuardianPhone),
		helpers.GetContentNullString(learner.Address),
		learner.Attendance,
	).Scan(&learner.ID, &learner.CreatedAt, &learner.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "learners_upi_key") {
			return apperrors.ErrUPIAlreadyExists
		}
		return fmt.Errorf("error creating learner: %w", err)
	}

	return nil
}

// GetByID retrieves a learner by ID
func (r *LearnerRepository) GetByID(ctx context.Context, id int64) (*models.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE id = $1`

	learner, err := r.scanLearner(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return learner, nil
}

// GetByUPI retrieves a learner by UPI
func (r *LearnerRepository) GetByUPI(ctx context.Context, upi string) (*models.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE upi = $1`

	learner, err := r.scanLearner(r.db.QueryRow(ctx, query, upi))
	if err != nil {
		return nil, err
	}

	return learner, nil
}

// GetAllByInstitution retrieves all learners of an institution in insertion
// order
func (r *LearnerRepository) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Learner, error) {
	query := `SELECT ` + learnerColumns + ` FROM learners WHERE institution_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var learners []*models.Learner
	for rows.Next() {
		learner, err := r.scanLearner(rows)
		if err != nil {
			return nil, err
		}
		learners = append(learners, learner)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return learners, nil
}

// Update updates an existing learner's editable fields
func (r *LearnerRepository) Update(ctx context.Context, learner *models.Learner) error {
	query := `
		UPDATE learners
		SET first_name = $1, last_name = $2, other_name = $3, gender = $4,
		    date_of_birth = $5, course = $6, level = $7, class_name = $8,
		    guardian_name = $9, guardian_phone = $10, address = $11,
		    attendance = $12, status = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $14
	`

	cmdTag, err := r.db.Exec(ctx, query,
		learner.FirstName,
		learner.LastName,
		helpers.GetContentNullString(learner.OtherName),
		learner.Gender,
		learner.DateOfBirth,
		learner.Course,
		helpers.GetContentNullString(learner.Level),
		helpers.GetContentNullString(learner.ClassName),
		helpers.GetContentNullString(learner.GuardianName),
		helpers.GetContentNullString(learner.GuardianPhone),
		helpers.GetContentNullString(learner.Address),
		learner.Attendance,
		learner.Status,
		learner.ID,
	)

	if err != nil {
		return fmt.Errorf("error updating learner: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLearnerNotFound
	}

	return nil
}

// UpdateStatus moves a learner to a new lifecycle status
func (r *LearnerRepository) UpdateStatus(ctx context.Context, id int64, status models.LearnerStatus) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE learners SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating learner status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLearnerNotFound
	}

	return nil
}

// Delete deletes a learner by ID
func (r *LearnerRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM learners WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrLearnerIsDeceased
		}
		return fmt.Errorf("error deleting learner: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLearnerNotFound
	}

	return nil
}

// CountByInstitution returns headcount figures for an institution's
// dashboard
func (r *LearnerRepository) CountByInstitution(ctx context.Context, institutionID int64) (total, active, male, female int, err error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'ACTIVE'),
		       COUNT(*) FILTER (WHERE gender = 'MALE' AND status = 'ACTIVE'),
		       COUNT(*) FILTER (WHERE gender = 'FEMALE' AND status = 'ACTIVE')
		FROM learners
		WHERE institution_id = $1
	`

	err = r.db.QueryRow(ctx, query, institutionID).Scan(&total, &active, &male, &female)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("error counting learners: %w", err)
	}

	return total, active, male, female, nil
}

// AdmissionsByClass returns per-class gender counts for learners admitted
// in the given year
func (r *LearnerRepository) AdmissionsByClass(ctx context.Context, institutionID int64, year int) (map[string][2]int, error) {
	query := `
		SELECT COALESCE(class_name, course),
		       COUNT(*) FILTER (WHERE gender = 'MALE'),
		       COUNT(*) FILTER (WHERE gender = 'FEMALE')
		FROM learners
		WHERE institution_id = $1 AND EXTRACT(YEAR FROM admission_date) = $2
		GROUP BY COALESCE(class_name, course)
		ORDER BY COALESCE(class_name, course)
	`

	rows, err := r.db.Query(ctx, query, institutionID, year)
	if err != nil {
		return nil, fmt.Errorf("error querying admissions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string][2]int)
	for rows.Next() {
		var class string
		var maleCount, femaleCount int
		if err := rows.Scan(&class, &maleCount, &femaleCount); err != nil {
			return nil, err
		}
		counts[class] = [2]int{maleCount, femaleCount}
	}

	return counts, rows.Err()
}

func (r *LearnerRepository) scanLearner(row pgx.Row) (*models.Learner, error) {
	var learner models.Learner
	err := row.Scan(
		&learner.ID,
		&learner.InstitutionID,
		&learner.UPI,
		&learner.FirstName,
		&learner.LastName,
		&learner.OtherName,
		&learner.Gender,
		&learner.DateOfBirth,
		&learner.ProgramType,
		&learner.Course,
		&learner.Level,
		&learner.ClassName,
		&learner.AdmissionDate,
		&learner.Status,
		&learner.GuardianName,
		&learner.GuardianPhone,
		&learner.Address,
		&learner.Attendance,
		&learner.CreatedAt,
		&learner.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLearnerNotFound
		}
		return nil, fmt.Errorf("error retrieving learner: %w", err)
	}

	return &learner, nil
}

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

const deceasedColumns = `
	d.id, d.learner_id, d.institution_id, d.date_of_death, d.cause_of_death,
	COALESCE(d.place_of_death, ''), d.reported_by, COALESCE(d.reporter_relation, ''),
	COALESCE(d.reporter_contact, ''), COALESCE(d.certificate_number, ''),
	COALESCE(d.notes, ''), d.status, d.recorded_at`

// DeceasedRepository handles database operations for deceased records
type DeceasedRepository struct {
	db *pgxpool.Pool
}

// NewDeceasedRepository creates a new deceased record repository
func NewDeceasedRepository(db *pgxpool.Pool) *DeceasedRepository {
	return &DeceasedRepository{
		db: db,
	}
}

// Create inserts a deceased record and moves the learner to the DECEASED
// status within one transaction.
func (r *DeceasedRepository) Create(ctx context.Context, record *models.DeceasedRecord) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO deceased_records (learner_id, institution_id, date_of_death,
				cause_of_death, place_of_death, reported_by, reporter_relation,
				reporter_contact, certificate_number, notes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, recorded_at
		`

		err := tx.QueryRow(ctx, query,
			record.LearnerID,
			record.InstitutionID,
			record.DateOfDeath,
			record.CauseOfDeath,
			helpers.GetContentNullString(record.PlaceOfDeath),
			record.ReportedBy,
			helpers.GetContentNullString(record.ReporterRelation),
			helpers.GetContentNullString(record.ReporterContact),
			helpers.GetContentNullString(record.CertificateNumber),
			helpers.GetContentNullString(record.Notes),
			record.Status,
		).Scan(&record.ID, &record.RecordedAt)

		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "deceased_records_learner_id_key") {
				return apperrors.ErrLearnerIsDeceased
			}
			return fmt.Errorf("error creating deceased record: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `
			UPDATE learners SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			models.LearnerDeceased, record.LearnerID)
		if err != nil {
			return fmt.Errorf("error updating learner status: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrLearnerNotFound
		}

		return nil
	})
}

// GetByID retrieves a deceased record by ID with the learner joined in
func (r *DeceasedRepository) GetByID(ctx context.Context, id int64) (*models.DeceasedRecord, error) {
	query := `
		SELECT ` + deceasedColumns + `, ` + joinedLearnerColumns + `
		FROM deceased_records d
		JOIN learners l ON l.id = d.learner_id
		WHERE d.id = $1
	`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return record, nil
}

// GetAllByInstitution retrieves all deceased records of an institution,
// most recent first, with learners joined in
func (r *DeceasedRepository) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.DeceasedRecord, error) {
	query := `
		SELECT ` + deceasedColumns + `, ` + joinedLearnerColumns + `
		FROM deceased_records d
		JOIN learners l ON l.id = d.learner_id
		WHERE d.institution_id = $1
		ORDER BY d.id DESC
	`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DeceasedRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ExistsForLearner checks whether a learner already has a deceased record
func (r *DeceasedRepository) ExistsForLearner(ctx context.Context, learnerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM deceased_records WHERE learner_id = $1)`,
		learnerID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking deceased record existence: %w", err)
	}

	return exists, nil
}

const joinedLearnerColumns = `
	l.id, l.institution_id, l.upi, l.first_name, l.last_name, COALESCE(l.other_name, ''),
	l.gender, l.date_of_birth, l.program_type, l.course, COALESCE(l.level, ''),
	COALESCE(l.class_name, ''), l.admission_date, l.status, COALESCE(l.guardian_name, ''),
	COALESCE(l.guardian_phone, ''), COALESCE(l.address, ''), l.attendance,
	l.created_at, l.updated_at`

func (r *DeceasedRepository) scanRecord(row pgx.Row) (*models.DeceasedRecord, error) {
	var record models.DeceasedRecord
	var learner models.Learner

	err := row.Scan(
		&record.ID,
		&record.LearnerID,
		&record.InstitutionID,
		&record.DateOfDeath,
		&record.CauseOfDeath,
		&record.PlaceOfDeath,
		&record.ReportedBy,
		&record.ReporterRelation,
		&record.ReporterContact,
		&record.CertificateNumber,
		&record.Notes,
		&record.Status,
		&record.RecordedAt,
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
			return nil, apperrors.ErrDeceasedRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving deceased record: %w", err)
	}

	record.Learner = &learner
	return &record, nil
}

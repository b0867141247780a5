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

const receiptColumns = `
	id, institution_id, receipt_number, amount, received_date, academic_year,
	term, COALESCE(description, ''), file_path, file_name, status, uploaded_by,
	verified_by, verified_at, created_at`

// ReceiptRepository handles database operations for capitation receipts
type ReceiptRepository struct {
	db *pgxpool.Pool
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{
		db: db,
	}
}

// Create creates a new capitation receipt
func (r *ReceiptRepository) Create(ctx context.Context, receipt *models.CapitationReceipt) error {
	query := `
		INSERT INTO capitation_receipts (institution_id, receipt_number, amount,
			received_date, academic_year, term, description, file_path, file_name,
			status, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		receipt.InstitutionID,
		receipt.ReceiptNumber,
		receipt.Amount,
		receipt.ReceivedDate,
		receipt.AcademicYear,
		receipt.Term,
		helpers.GetContentNullString(receipt.Description),
		receipt.FilePath,
		receipt.FileName,
		receipt.Status,
		receipt.UploadedBy,
	).Scan(&receipt.ID, &receipt.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrReceiptAlreadyExists
		}
		return fmt.Errorf("error creating receipt: %w", err)
	}

	return nil
}

// GetByID retrieves a receipt by ID
func (r *ReceiptRepository) GetByID(ctx context.Context, id int64) (*models.CapitationReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM capitation_receipts WHERE id = $1`

	receipt, err := r.scanReceipt(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// GetAllByInstitution retrieves all receipts of an institution, most recent
// first
func (r *ReceiptRepository) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.CapitationReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM capitation_receipts WHERE institution_id = $1 ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.CapitationReceipt
	for rows.Next() {
		receipt, err := r.scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return receipts, nil
}

// GetAll retrieves receipts of every institution for county level review,
// most recent first
func (r *ReceiptRepository) GetAll(ctx context.Context) ([]*models.CapitationReceipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM capitation_receipts ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.CapitationReceipt
	for rows.Next() {
		receipt, err := r.scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return receipts, nil
}

// Verify marks a pending receipt as verified by the given county admin
func (r *ReceiptRepository) Verify(ctx context.Context, id, verifiedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE capitation_receipts
		SET status = $1, verified_by = $2, verified_at = $3
		WHERE id = $4 AND status = $5`,
		models.ReceiptVerified, verifiedBy, time.Now(), id, models.ReceiptPending)

	if err != nil {
		return fmt.Errorf("error verifying receipt: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReceiptNotFound
	}

	return nil
}

// Delete deletes a receipt by ID and returns its stored file path so the
// caller can remove the file
func (r *ReceiptRepository) Delete(ctx context.Context, id int64) (string, error) {
	var filePath string
	err := r.db.QueryRow(ctx, `
		DELETE FROM capitation_receipts WHERE id = $1 RETURNING file_path`,
		id).Scan(&filePath)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrReceiptNotFound
		}
		return "", fmt.Errorf("error deleting receipt: %w", err)
	}

	return filePath, nil
}

// CountByInstitution returns receipt counts and the verified capitation sum
// for an institution
func (r *ReceiptRepository) CountByInstitution(ctx context.Context, institutionID int64) (pending, verified int, totalVerified float64, err error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'PENDING'),
		       COUNT(*) FILTER (WHERE status = 'VERIFIED'),
		       COALESCE(SUM(amount) FILTER (WHERE status = 'VERIFIED'), 0)
		FROM capitation_receipts
		WHERE institution_id = $1
	`

	err = r.db.QueryRow(ctx, query, institutionID).Scan(&pending, &verified, &totalVerified)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("error counting receipts: %w", err)
	}

	return pending, verified, totalVerified, nil
}

func (r *ReceiptRepository) scanReceipt(row pgx.Row) (*models.CapitationReceipt, error) {
	var receipt models.CapitationReceipt
	err := row.Scan(
		&receipt.ID,
		&receipt.InstitutionID,
		&receipt.ReceiptNumber,
		&receipt.Amount,
		&receipt.ReceivedDate,
		&receipt.AcademicYear,
		&receipt.Term,
		&receipt.Description,
		&receipt.FilePath,
		&receipt.FileName,
		&receipt.Status,
		&receipt.UploadedBy,
		&receipt.VerifiedBy,
		&receipt.VerifiedAt,
		&receipt.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("error retrieving receipt: %w", err)
	}

	return &receipt, nil
}

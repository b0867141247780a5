package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/filestorage"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/logger"
	"github.com/busiadev/ecdeavotmis/internal/pkg/query"
	"github.com/busiadev/ecdeavotmis/internal/pkg/validation"
)

// allowedReceiptExtensions lists the accepted receipt document formats.
var allowedReceiptExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// receiptStore is the receipt persistence the service depends on.
type receiptStore interface {
	Create(ctx context.Context, receipt *models.CapitationReceipt) error
	GetByID(ctx context.Context, id int64) (*models.CapitationReceipt, error)
	GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.CapitationReceipt, error)
	GetAll(ctx context.Context) ([]*models.CapitationReceipt, error)
	Verify(ctx context.Context, id, verifiedBy int64) error
	Delete(ctx context.Context, id int64) (string, error)
}

var receiptFilter = query.Definition[*models.CapitationReceipt]{
	SearchFields: []func(*models.CapitationReceipt) string{
		func(r *models.CapitationReceipt) string { return r.ReceiptNumber },
		func(r *models.CapitationReceipt) string { return r.Description },
	},
	Selectors: []query.Selector[*models.CapitationReceipt]{
		{Name: "academicYear", Value: func(r *models.CapitationReceipt) string { return r.AcademicYear }},
		{Name: "term", Value: func(r *models.CapitationReceipt) string { return r.Term }, Fold: true},
		{Name: "status", Value: func(r *models.CapitationReceipt) string { return string(r.Status) }, Fold: true},
	},
}

// ReceiptService defines the interface for capitation receipt operations
type ReceiptService interface {
	UploadReceipt(ctx context.Context, institutionID, userID int64, req *dto.UploadReceiptRequest, file *multipart.FileHeader) (*models.CapitationReceipt, error)
	GetReceiptByID(ctx context.Context, institutionID, id int64) (*models.CapitationReceipt, error)
	ListReceipts(ctx context.Context, institutionID int64, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error)
	ListCountyReceipts(ctx context.Context, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error)
	VerifyReceipt(ctx context.Context, id, verifiedBy int64) (*models.CapitationReceipt, error)
	DeleteReceipt(ctx context.Context, institutionID, id int64) error
}

// receiptServiceImpl implements the ReceiptService interface
type receiptServiceImpl struct {
	store        receiptStore
	fileStorage  filestorage.FileStorage
	maxFileBytes int64
}

// NewReceiptService creates a new receipt service instance
func NewReceiptService(store receiptStore, fileStorage filestorage.FileStorage, maxFileBytes int64) ReceiptService {
	return &receiptServiceImpl{
		store:        store,
		fileStorage:  fileStorage,
		maxFileBytes: maxFileBytes,
	}
}

// UploadReceipt validates the receipt form and document, stores the file
// and records the receipt as PENDING. Validation happens before any file or
// database write.
func (s *receiptServiceImpl) UploadReceipt(ctx context.Context, institutionID, userID int64, req *dto.UploadReceiptRequest, file *multipart.FileHeader) (*models.CapitationReceipt, error) {
	if err := s.validateUpload(req, file); err != nil {
		return nil, err
	}

	receivedDate, err := time.Parse("2006-01-02", req.ReceivedDate)
	if err != nil {
		return nil, fmt.Errorf("%w: received date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	filePath, err := s.fileStorage.SaveFileWithPath(file, "receipts")
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt document: %w", err)
	}

	receipt := &models.CapitationReceipt{
		InstitutionID: institutionID,
		ReceiptNumber: strings.ToUpper(strings.TrimSpace(req.ReceiptNumber)),
		Amount:        req.Amount,
		ReceivedDate:  receivedDate,
		AcademicYear:  strings.TrimSpace(req.AcademicYear),
		Term:          req.Term,
		Description:   strings.TrimSpace(req.Description),
		FilePath:      filePath,
		FileName:      file.Filename,
		Status:        models.ReceiptPending,
		UploadedBy:    userID,
	}

	if err := s.store.Create(ctx, receipt); err != nil {
		// The row was rejected, clean up the stored file.
		if delErr := s.fileStorage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", filePath).Msg("Failed to remove orphaned receipt file")
		}
		return nil, err
	}

	logger.Info().
		Int64("receiptID", receipt.ID).
		Str("receiptNumber", receipt.ReceiptNumber).
		Int64("institutionID", institutionID).
		Msg("Capitation receipt uploaded")

	return receipt, nil
}

// GetReceiptByID retrieves one receipt. Receipts of other institutions are
// reported as not found.
func (s *receiptServiceImpl) GetReceiptByID(ctx context.Context, institutionID, id int64) (*models.CapitationReceipt, error) {
	receipt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.InstitutionID != institutionID {
		return nil, apperrors.ErrReceiptNotFound
	}
	return receipt, nil
}

// ListReceipts loads the institution's receipts, filters them in memory
// and returns one page
func (s *receiptServiceImpl) ListReceipts(ctx context.Context, institutionID int64, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error) {
	receipts, err := s.store.GetAllByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["academicYear"] = filter.AcademicYear
		filters["term"] = filter.Term
		filters["status"] = filter.Status
	}

	matched := receiptFilter.Apply(receipts, search, filters)

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

// ListCountyReceipts loads receipts across every institution for county
// level review, filters them in memory and returns one page
func (s *receiptServiceImpl) ListCountyReceipts(ctx context.Context, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error) {
	receipts, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["academicYear"] = filter.AcademicYear
		filters["term"] = filter.Term
		filters["status"] = filter.Status
	}

	matched := receiptFilter.Apply(receipts, search, filters)

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

// VerifyReceipt marks a pending receipt as verified by a county admin
func (s *receiptServiceImpl) VerifyReceipt(ctx context.Context, id, verifiedBy int64) (*models.CapitationReceipt, error) {
	if err := s.store.Verify(ctx, id, verifiedBy); err != nil {
		return nil, err
	}

	return s.store.GetByID(ctx, id)
}

// DeleteReceipt removes a receipt and its stored document
func (s *receiptServiceImpl) DeleteReceipt(ctx context.Context, institutionID, id int64) error {
	if _, err := s.GetReceiptByID(ctx, institutionID, id); err != nil {
		return err
	}

	filePath, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(filePath); err != nil {
		logger.Warn().Err(err).Str("path", filePath).Msg("Failed to remove receipt file")
	}

	return nil
}

func (s *receiptServiceImpl) validateUpload(req *dto.UploadReceiptRequest, file *multipart.FileHeader) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidReceiptNumber(strings.ToUpper(strings.TrimSpace(req.ReceiptNumber))) {
		return fmt.Errorf("%w: receipt number must look like CAP/2024/003", apperrors.ErrValidationFailed)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidationFailed)
	}
	if file == nil {
		return apperrors.ErrReceiptFileMissing
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedReceiptExtensions[ext] {
		return apperrors.ErrUnsupportedFileFormat
	}
	if s.maxFileBytes > 0 && file.Size > s.maxFileBytes {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

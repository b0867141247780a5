package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/logger"
	"github.com/busiadev/ecdeavotmis/internal/pkg/query"
)

// deceasedStore is the deceased record persistence the service depends on.
type deceasedStore interface {
	Create(ctx context.Context, record *models.DeceasedRecord) error
	GetByID(ctx context.Context, id int64) (*models.DeceasedRecord, error)
	GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.DeceasedRecord, error)
	ExistsForLearner(ctx context.Context, learnerID int64) (bool, error)
}

var deceasedRecordFilter = query.Definition[*models.DeceasedRecord]{
	SearchFields: []func(*models.DeceasedRecord) string{
		func(d *models.DeceasedRecord) string {
			if d.Learner != nil {
				return d.Learner.FullName()
			}
			return ""
		},
		func(d *models.DeceasedRecord) string {
			if d.Learner != nil {
				return d.Learner.UPI
			}
			return ""
		},
		func(d *models.DeceasedRecord) string { return d.CauseOfDeath },
	},
	Selectors: []query.Selector[*models.DeceasedRecord]{
		{Name: "status", Value: func(d *models.DeceasedRecord) string { return string(d.Status) }, Fold: true},
		{Name: "year", Value: func(d *models.DeceasedRecord) string { return strconv.Itoa(d.DateOfDeath.Year()) }},
	},
}

// DeceasedService defines the interface for deceased record operations
type DeceasedService interface {
	CreateRecord(ctx context.Context, institutionID int64, req *dto.CreateDeceasedRecordRequest) (*models.DeceasedRecord, error)
	GetRecordByID(ctx context.Context, institutionID, id int64) (*models.DeceasedRecord, error)
	ListRecords(ctx context.Context, institutionID int64, filter *dto.DeceasedFilterRequest, page, size int) ([]*models.DeceasedRecord, dto.PaginationInfo, error)
}

// deceasedServiceImpl implements the DeceasedService interface
type deceasedServiceImpl struct {
	store    deceasedStore
	learners learnerStore
}

// NewDeceasedService creates a new deceased record service instance
func NewDeceasedService(store deceasedStore, learners learnerStore) DeceasedService {
	return &deceasedServiceImpl{
		store:    store,
		learners: learners,
	}
}

// CreateRecord documents a learner's death. The learner must belong to the
// institution and not already be recorded as deceased; the insert and the
// learner's status change commit together.
func (s *deceasedServiceImpl) CreateRecord(ctx context.Context, institutionID int64, req *dto.CreateDeceasedRecordRequest) (*models.DeceasedRecord, error) {
	if err := s.validateRecord(req); err != nil {
		return nil, err
	}

	dateOfDeath, err := time.Parse("2006-01-02", req.DateOfDeath)
	if err != nil {
		return nil, fmt.Errorf("%w: date of death must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	learner, err := s.learners.GetByID(ctx, req.LearnerID)
	if err != nil {
		return nil, err
	}
	if learner.InstitutionID != institutionID {
		return nil, apperrors.ErrLearnerNotFound
	}
	if learner.Status == models.LearnerDeceased {
		return nil, apperrors.ErrLearnerIsDeceased
	}

	exists, err := s.store.ExistsForLearner(ctx, learner.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrLearnerIsDeceased
	}

	record := &models.DeceasedRecord{
		LearnerID:         learner.ID,
		InstitutionID:     institutionID,
		DateOfDeath:       dateOfDeath,
		CauseOfDeath:      strings.TrimSpace(req.CauseOfDeath),
		PlaceOfDeath:      strings.TrimSpace(req.PlaceOfDeath),
		ReportedBy:        strings.TrimSpace(req.ReportedBy),
		ReporterRelation:  strings.TrimSpace(req.ReporterRelation),
		ReporterContact:   strings.TrimSpace(req.ReporterContact),
		CertificateNumber: strings.TrimSpace(req.CertificateNumber),
		Notes:             strings.TrimSpace(req.Notes),
		Status:            models.DeceasedRecordPending,
	}

	if err := s.store.Create(ctx, record); err != nil {
		return nil, err
	}

	record.Learner = learner
	record.Learner.Status = models.LearnerDeceased

	logger.Info().
		Int64("recordID", record.ID).
		Int64("learnerID", learner.ID).
		Str("upi", learner.UPI).
		Msg("Deceased record created")

	return record, nil
}

// GetRecordByID retrieves one deceased record. Records of other
// institutions are reported as not found.
func (s *deceasedServiceImpl) GetRecordByID(ctx context.Context, institutionID, id int64) (*models.DeceasedRecord, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.InstitutionID != institutionID {
		return nil, apperrors.ErrDeceasedRecordNotFound
	}
	return record, nil
}

// ListRecords loads the institution's deceased records, filters them in
// memory and returns one page
func (s *deceasedServiceImpl) ListRecords(ctx context.Context, institutionID int64, filter *dto.DeceasedFilterRequest, page, size int) ([]*models.DeceasedRecord, dto.PaginationInfo, error) {
	records, err := s.store.GetAllByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["status"] = filter.Status
		filters["year"] = filter.Year
	}

	matched := deceasedRecordFilter.Apply(records, search, filters)

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

func (s *deceasedServiceImpl) validateRecord(req *dto.CreateDeceasedRecordRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}
	if req.LearnerID < 1 {
		return fmt.Errorf("%w: learner id is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.CauseOfDeath) == "" {
		return fmt.Errorf("%w: cause of death is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.ReportedBy) == "" {
		return fmt.Errorf("%w: reporter name is required", apperrors.ErrValidationFailed)
	}
	return nil
}

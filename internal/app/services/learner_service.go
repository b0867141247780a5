package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/helpers"
	"github.com/busiadev/ecdeavotmis/internal/pkg/logger"
	"github.com/busiadev/ecdeavotmis/internal/pkg/query"
	"github.com/busiadev/ecdeavotmis/internal/pkg/validation"
)

// learnerStore is the learner persistence the service depends on.
type learnerStore interface {
	Create(ctx context.Context, learner *models.Learner) error
	GetByID(ctx context.Context, id int64) (*models.Learner, error)
	GetByUPI(ctx context.Context, upi string) (*models.Learner, error)
	GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Learner, error)
	Update(ctx context.Context, learner *models.Learner) error
	Delete(ctx context.Context, id int64) error
	AdmissionsByClass(ctx context.Context, institutionID int64, year int) (map[string][2]int, error)
}

// learnerFilter describes the searchable and filterable surface of the
// learner register. Search covers name parts, UPI and course; selectors
// compare exactly, with case folding on gender and status.
var learnerFilter = query.Definition[*models.Learner]{
	SearchFields: []func(*models.Learner) string{
		func(l *models.Learner) string { return l.FirstName },
		func(l *models.Learner) string { return l.LastName },
		func(l *models.Learner) string { return l.UPI },
		func(l *models.Learner) string { return l.Course },
	},
	Selectors: []query.Selector[*models.Learner]{
		{Name: "programType", Value: func(l *models.Learner) string { return string(l.ProgramType) }},
		{Name: "course", Value: func(l *models.Learner) string { return l.Course }, Fold: true},
		{Name: "class", Value: func(l *models.Learner) string { return l.ClassName }, Fold: true},
		{Name: "gender", Value: func(l *models.Learner) string { return l.Gender }, Fold: true},
		{Name: "status", Value: func(l *models.Learner) string { return string(l.Status) }, Fold: true},
		{Name: "admissionYear", Value: func(l *models.Learner) string { return strconv.Itoa(l.AdmissionDate.Year()) }},
	},
}

// LearnerService defines the interface for learner register operations
type LearnerService interface {
	CreateLearner(ctx context.Context, institutionID int64, req *dto.CreateLearnerRequest) (*models.Learner, error)
	GetLearnerByID(ctx context.Context, institutionID, id int64) (*models.Learner, error)
	GetLearnerByUPI(ctx context.Context, upi string) (*models.Learner, error)
	ListLearners(ctx context.Context, institutionID int64, filter *dto.LearnerFilterRequest, page, size int) ([]*models.Learner, dto.PaginationInfo, error)
	UpdateLearner(ctx context.Context, institutionID, id int64, req *dto.UpdateLearnerRequest) (*models.Learner, error)
	DeleteLearner(ctx context.Context, institutionID, id int64) error
	AdmissionReport(ctx context.Context, institutionID int64, year int) (*dto.AdmissionReportResponse, error)
}

// learnerServiceImpl implements the LearnerService interface
type learnerServiceImpl struct {
	store learnerStore
}

// NewLearnerService creates a new learner service instance
func NewLearnerService(store learnerStore) LearnerService {
	return &learnerServiceImpl{
		store: store,
	}
}

// CreateLearner admits a new learner into an institution
func (s *learnerServiceImpl) CreateLearner(ctx context.Context, institutionID int64, req *dto.CreateLearnerRequest) (*models.Learner, error) {
	if err := s.validateAdmission(req); err != nil {
		return nil, err
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	admissionDate, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		return nil, fmt.Errorf("%w: admission date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	learner := &models.Learner{
		InstitutionID: institutionID,
		UPI:           strings.ToUpper(strings.TrimSpace(req.UPI)),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		OtherName:     strings.TrimSpace(req.OtherName),
		Gender:        strings.ToUpper(req.Gender),
		DateOfBirth:   dateOfBirth,
		ProgramType:   models.ProgramType(req.ProgramType),
		Course:        strings.TrimSpace(req.Course),
		Level:         strings.TrimSpace(req.Level),
		ClassName:     strings.TrimSpace(req.ClassName),
		AdmissionDate: admissionDate,
		Status:        models.LearnerActive,
		GuardianName:  strings.TrimSpace(req.GuardianName),
		GuardianPhone: strings.TrimSpace(req.GuardianPhone),
		Address:       strings.TrimSpace(req.Address),
	}

	if err := s.store.Create(ctx, learner); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("learnerID", learner.ID).
		Str("upi", learner.UPI).
		Int64("institutionID", institutionID).
		Msg("Learner admitted")

	return learner, nil
}

// GetLearnerByID retrieves one learner. Learners of other institutions are
// reported as not found so their existence never leaks.
func (s *learnerServiceImpl) GetLearnerByID(ctx context.Context, institutionID, id int64) (*models.Learner, error) {
	learner, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if learner.InstitutionID != institutionID {
		return nil, apperrors.ErrLearnerNotFound
	}
	return learner, nil
}

// GetLearnerByUPI retrieves one learner by UPI
func (s *learnerServiceImpl) GetLearnerByUPI(ctx context.Context, upi string) (*models.Learner, error) {
	return s.store.GetByUPI(ctx, strings.ToUpper(strings.TrimSpace(upi)))
}

// ListLearners loads the institution's register, applies the search term
// and selectors in memory and returns one page of matches.
func (s *learnerServiceImpl) ListLearners(ctx context.Context, institutionID int64, filter *dto.LearnerFilterRequest, page, size int) ([]*models.Learner, dto.PaginationInfo, error) {
	learners, err := s.store.GetAllByInstitution(ctx, institutionID)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	filters := query.Filters{}
	search := ""
	if filter != nil {
		search = filter.Search
		filters["programType"] = filter.ProgramType
		filters["course"] = filter.Course
		filters["class"] = filter.ClassName
		filters["gender"] = filter.Gender
		filters["status"] = filter.Status
		filters["admissionYear"] = filter.AdmissionYear
	}

	matched := learnerFilter.Apply(learners, search, filters)
	if filter != nil && (filter.AgeFrom != nil || filter.AgeTo != nil) {
		matched = filterByAge(matched, filter.AgeFrom, filter.AgeTo)
	}

	pagination := dto.NewPaginationInfo(len(matched), page, size)
	start, end := helpers.CalculateSliceIndices(page, size, len(matched))

	return matched[start:end], pagination, nil
}

// UpdateLearner updates a learner's editable fields
func (s *learnerServiceImpl) UpdateLearner(ctx context.Context, institutionID, id int64, req *dto.UpdateLearnerRequest) (*models.Learner, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	if req.GuardianPhone != "" && !validation.IsValidPhone(req.GuardianPhone) {
		return nil, fmt.Errorf("%w: guardian phone must be in +254XXXXXXXXX format", apperrors.ErrValidationFailed)
	}

	learner, err := s.GetLearnerByID(ctx, institutionID, id)
	if err != nil {
		return nil, err
	}

	if learner.Status == models.LearnerDeceased {
		return nil, apperrors.ErrLearnerIsDeceased
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	learner.FirstName = strings.TrimSpace(req.FirstName)
	learner.LastName = strings.TrimSpace(req.LastName)
	learner.OtherName = strings.TrimSpace(req.OtherName)
	learner.Gender = strings.ToUpper(req.Gender)
	learner.DateOfBirth = dateOfBirth
	learner.Course = strings.TrimSpace(req.Course)
	learner.Level = strings.TrimSpace(req.Level)
	learner.ClassName = strings.TrimSpace(req.ClassName)
	learner.GuardianName = strings.TrimSpace(req.GuardianName)
	learner.GuardianPhone = strings.TrimSpace(req.GuardianPhone)
	learner.Address = strings.TrimSpace(req.Address)
	if req.Attendance != nil {
		learner.Attendance = *req.Attendance
	}
	if req.Status != "" {
		learner.Status = models.LearnerStatus(req.Status)
	}

	if err := s.store.Update(ctx, learner); err != nil {
		return nil, err
	}

	return learner, nil
}

// DeleteLearner removes a learner from the register
func (s *learnerServiceImpl) DeleteLearner(ctx context.Context, institutionID, id int64) error {
	if _, err := s.GetLearnerByID(ctx, institutionID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// AdmissionReport builds the per-class gender breakdown of admissions for
// a year
func (s *learnerServiceImpl) AdmissionReport(ctx context.Context, institutionID int64, year int) (*dto.AdmissionReportResponse, error) {
	counts, err := s.store.AdmissionsByClass(ctx, institutionID, year)
	if err != nil {
		return nil, err
	}

	report := &dto.AdmissionReportResponse{
		InstitutionID: institutionID,
		Year:          year,
		Rows:          make([]dto.AdmissionReportRow, 0, len(counts)),
	}

	classes := make([]string, 0, len(counts))
	for class := range counts {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	for _, class := range classes {
		male, female := counts[class][0], counts[class][1]
		report.Rows = append(report.Rows, dto.AdmissionReportRow{
			ClassName: class,
			Male:      male,
			Female:    female,
			Total:     male + female,
		})
		report.TotalMale += male
		report.TotalFemale += female
	}
	report.GrandTotal = report.TotalMale + report.TotalFemale

	return report, nil
}

// filterByAge keeps learners whose current age falls inside the inclusive
// bounds. A nil bound is open.
func filterByAge(learners []*models.Learner, from, to *int) []*models.Learner {
	now := time.Now()
	kept := make([]*models.Learner, 0, len(learners))
	for _, l := range learners {
		age := helpers.Age(l.DateOfBirth, now)
		if from != nil && age < *from {
			continue
		}
		if to != nil && age > *to {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

func (s *learnerServiceImpl) validateAdmission(req *dto.CreateLearnerRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidUPI(strings.ToUpper(strings.TrimSpace(req.UPI))) {
		return fmt.Errorf("%w: UPI must be two letters followed by digits", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Course) == "" {
		return fmt.Errorf("%w: course is required", apperrors.ErrValidationFailed)
	}
	if req.GuardianPhone != "" && !validation.IsValidPhone(req.GuardianPhone) {
		return fmt.Errorf("%w: guardian phone must be in +254XXXXXXXXX format", apperrors.ErrValidationFailed)
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
	"github.com/busiadev/ecdeavotmis/internal/pkg/logger"
	"github.com/busiadev/ecdeavotmis/internal/pkg/validation"
)

// institutionStore is the institution persistence the service depends on.
type institutionStore interface {
	CreateWithAdmin(ctx context.Context, institution *models.Institution, userID int64) error
	GetByID(ctx context.Context, id int64) (*models.Institution, error)
	GetAll(ctx context.Context) ([]*models.Institution, error)
	ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error)
	Update(ctx context.Context, institution *models.Institution) error
}

// InstitutionService defines the interface for institution operations
type InstitutionService interface {
	SetupInstitution(ctx context.Context, userID int64, req *dto.CreateInstitutionRequest) (*models.Institution, error)
	GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error)
	GetAllInstitutions(ctx context.Context) ([]*models.Institution, error)
	UpdateInstitution(ctx context.Context, id int64, req *dto.UpdateInstitutionRequest) (*models.Institution, error)
}

// institutionServiceImpl implements the InstitutionService interface
type institutionServiceImpl struct {
	store      institutionStore
	countyName string
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(store institutionStore, countyName string) InstitutionService {
	return &institutionServiceImpl{
		store:      store,
		countyName: countyName,
	}
}

// SetupInstitution registers an institution and makes the calling user its
// admin. The caller must not already be bound to an institution.
func (s *institutionServiceImpl) SetupInstitution(ctx context.Context, userID int64, req *dto.CreateInstitutionRequest) (*models.Institution, error) {
	if err := s.validateSetup(req); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByRegistrationNo(ctx, req.RegistrationNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrInstitutionAlreadyExists
	}

	institution := &models.Institution{
		Name:           strings.TrimSpace(req.Name),
		Type:           models.ProgramType(req.Type),
		Level:          strings.TrimSpace(req.Level),
		RegistrationNo: strings.TrimSpace(req.RegistrationNo),
		County:         s.countyName,
		SubCounty:      strings.TrimSpace(req.SubCounty),
		Ward:           strings.TrimSpace(req.Ward),
		Address:        strings.TrimSpace(req.Address),
		Phone:          strings.TrimSpace(req.Phone),
		Email:          strings.TrimSpace(req.Email),
		PrincipalName:  strings.TrimSpace(req.PrincipalName),
	}

	if err := s.store.CreateWithAdmin(ctx, institution, userID); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("institutionID", institution.ID).
		Int64("userID", userID).
		Str("registrationNo", institution.RegistrationNo).
		Msg("Institution registered")

	return institution, nil
}

// GetInstitutionByID retrieves one institution
func (s *institutionServiceImpl) GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error) {
	return s.store.GetByID(ctx, id)
}

// GetAllInstitutions retrieves the county institution directory ordered by
// name
func (s *institutionServiceImpl) GetAllInstitutions(ctx context.Context) ([]*models.Institution, error) {
	return s.store.GetAll(ctx)
}

// UpdateInstitution updates an institution's editable fields
func (s *institutionServiceImpl) UpdateInstitution(ctx context.Context, id int64, req *dto.UpdateInstitutionRequest) (*models.Institution, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Phone != "" && !validation.IsValidPhone(req.Phone) {
		return nil, fmt.Errorf("%w: phone must be in +254XXXXXXXXX format", apperrors.ErrValidationFailed)
	}

	institution, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	institution.Name = strings.TrimSpace(req.Name)
	institution.Level = strings.TrimSpace(req.Level)
	institution.SubCounty = strings.TrimSpace(req.SubCounty)
	institution.Ward = strings.TrimSpace(req.Ward)
	institution.Address = strings.TrimSpace(req.Address)
	institution.Phone = strings.TrimSpace(req.Phone)
	institution.Email = strings.TrimSpace(req.Email)
	institution.PrincipalName = strings.TrimSpace(req.PrincipalName)

	if err := s.store.Update(ctx, institution); err != nil {
		return nil, err
	}

	return institution, nil
}

func (s *institutionServiceImpl) validateSetup(req *dto.CreateInstitutionRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidRegistrationNo(req.RegistrationNo) {
		return fmt.Errorf("%w: registration number is invalid", apperrors.ErrValidationFailed)
	}
	if req.Type != string(models.ProgramECDE) && req.Type != string(models.ProgramVocational) {
		return fmt.Errorf("%w: type must be ECDE or VOCATIONAL", apperrors.ErrValidationFailed)
	}
	if req.Phone != "" && !validation.IsValidPhone(req.Phone) {
		return fmt.Errorf("%w: phone must be in +254XXXXXXXXX format", apperrors.ErrValidationFailed)
	}
	return nil
}

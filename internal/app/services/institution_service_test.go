package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

type fakeInstitutionStore struct {
	institutions []*models.Institution
	adminBinding map[int64]int64 // institution id -> admin user id
	nextID       int64
	createCalls  int
}

func newFakeInstitutionStore() *fakeInstitutionStore {
	return &fakeInstitutionStore{adminBinding: map[int64]int64{}, nextID: 1}
}

func (f *fakeInstitutionStore) Create(ctx context.Context, institution *models.Institution) error {
	f.createCalls++
	institution.ID = f.nextID
	f.nextID++
	f.institutions = append(f.institutions, institution)
	return nil
}

func (f *fakeInstitutionStore) CreateWithAdmin(ctx context.Context, institution *models.Institution, userID int64) error {
	if err := f.Create(ctx, institution); err != nil {
		return err
	}
	f.adminBinding[institution.ID] = userID
	return nil
}

func (f *fakeInstitutionStore) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	for _, i := range f.institutions {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, apperrors.ErrInstitutionNotFound
}

func (f *fakeInstitutionStore) GetAll(ctx context.Context) ([]*models.Institution, error) {
	return f.institutions, nil
}

func (f *fakeInstitutionStore) ExistsByRegistrationNo(ctx context.Context, registrationNo string) (bool, error) {
	for _, i := range f.institutions {
		if i.RegistrationNo == registrationNo {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInstitutionStore) Update(ctx context.Context, institution *models.Institution) error {
	for idx, i := range f.institutions {
		if i.ID == institution.ID {
			f.institutions[idx] = institution
			return nil
		}
	}
	return apperrors.ErrInstitutionNotFound
}

func validSetup() *dto.CreateInstitutionRequest {
	return &dto.CreateInstitutionRequest{
		Name:           "St Joseph ECDE Centre",
		Type:           "ECDE",
		Level:          "Pre-Primary",
		RegistrationNo: "ECDE001",
		SubCounty:      "Matayos",
		Ward:           "Bukhayo West",
		Phone:          "+254712345678",
		PrincipalName:  "Jane Barasa",
	}
}

func TestSetupInstitution(t *testing.T) {
	store := newFakeInstitutionStore()
	svc := NewInstitutionService(store, "Busia")

	institution, err := svc.SetupInstitution(context.Background(), 7, validSetup())

	require.NoError(t, err)
	assert.Equal(t, int64(1), institution.ID)
	assert.Equal(t, "Busia", institution.County, "county comes from configuration, not the form")
	assert.Equal(t, models.ProgramECDE, institution.Type)
	assert.Equal(t, int64(7), store.adminBinding[institution.ID], "caller becomes the institution admin")
}

func TestSetupInstitution_ValidationFailureNeverHitsStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateInstitutionRequest)
	}{
		{"missing name", func(r *dto.CreateInstitutionRequest) { r.Name = "  " }},
		{"bad registration number", func(r *dto.CreateInstitutionRequest) { r.RegistrationNo = "001" }},
		{"bad type", func(r *dto.CreateInstitutionRequest) { r.Type = "PRIMARY" }},
		{"bad phone", func(r *dto.CreateInstitutionRequest) { r.Phone = "0712345678" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeInstitutionStore()
			svc := NewInstitutionService(store, "Busia")

			req := validSetup()
			tt.mutate(req)

			_, err := svc.SetupInstitution(context.Background(), 7, req)

			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestSetupInstitution_DuplicateRegistrationNo(t *testing.T) {
	store := newFakeInstitutionStore()
	svc := NewInstitutionService(store, "Busia")

	_, err := svc.SetupInstitution(context.Background(), 7, validSetup())
	require.NoError(t, err)

	_, err = svc.SetupInstitution(context.Background(), 8, validSetup())
	assert.ErrorIs(t, err, apperrors.ErrInstitutionAlreadyExists)
	assert.Equal(t, 1, store.createCalls)
}

func TestUpdateInstitution(t *testing.T) {
	store := newFakeInstitutionStore()
	svc := NewInstitutionService(store, "Busia")

	institution, err := svc.SetupInstitution(context.Background(), 7, validSetup())
	require.NoError(t, err)

	updated, err := svc.UpdateInstitution(context.Background(), institution.ID, &dto.UpdateInstitutionRequest{
		Name:          "St Joseph ECDE Centre",
		Level:         "Pre-Primary",
		SubCounty:     "Matayos",
		Ward:          "Bukhayo West",
		PrincipalName: "Peter Ojiambo",
	})

	require.NoError(t, err)
	assert.Equal(t, "Peter Ojiambo", updated.PrincipalName)
	assert.Equal(t, "Busia", updated.County, "county never changes on update")
}

func TestUpdateInstitution_NotFound(t *testing.T) {
	store := newFakeInstitutionStore()
	svc := NewInstitutionService(store, "Busia")

	_, err := svc.UpdateInstitution(context.Background(), 99, &dto.UpdateInstitutionRequest{
		Name: "Ghost Centre", Level: "x", SubCounty: "x", Ward: "x",
	})

	assert.ErrorIs(t, err, apperrors.ErrInstitutionNotFound)
}

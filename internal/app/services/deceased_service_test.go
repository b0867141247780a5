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

type fakeDeceasedStore struct {
	records     []*models.DeceasedRecord
	nextID      int64
	createCalls int
}

func newFakeDeceasedStore() *fakeDeceasedStore {
	return &fakeDeceasedStore{nextID: 1}
}

func (f *fakeDeceasedStore) Create(ctx context.Context, record *models.DeceasedRecord) error {
	f.createCalls++
	record.ID = f.nextID
	f.nextID++
	f.records = append(f.records, record)
	return nil
}

func (f *fakeDeceasedStore) GetByID(ctx context.Context, id int64) (*models.DeceasedRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.ErrDeceasedRecordNotFound
}

func (f *fakeDeceasedStore) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.DeceasedRecord, error) {
	out := make([]*models.DeceasedRecord, 0, len(f.records))
	for _, r := range f.records {
		if r.InstitutionID == institutionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeDeceasedStore) ExistsForLearner(ctx context.Context, learnerID int64) (bool, error) {
	for _, r := range f.records {
		if r.LearnerID == learnerID {
			return true, nil
		}
	}
	return false, nil
}

func validDeathReport(learnerID int64) *dto.CreateDeceasedRecordRequest {
	return &dto.CreateDeceasedRecordRequest{
		LearnerID:    learnerID,
		DateOfDeath:  "2024-03-02",
		CauseOfDeath: "Malaria",
		ReportedBy:   "Grace Wafula",
	}
}

func TestCreateDeceasedRecord(t *testing.T) {
	learners := newFakeLearnerStore()
	learner, err := NewLearnerService(learners).CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, learners)

	record, err := svc.CreateRecord(context.Background(), 1, validDeathReport(learner.ID))

	require.NoError(t, err)
	assert.Equal(t, models.DeceasedRecordPending, record.Status)
	require.NotNil(t, record.Learner)
	assert.Equal(t, models.LearnerDeceased, record.Learner.Status)
	assert.Equal(t, 1, store.createCalls)
}

func TestGetDeceasedRecord_OtherInstitutionIsNotFound(t *testing.T) {
	learners := newFakeLearnerStore()
	learner, err := NewLearnerService(learners).CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, learners)

	record, err := svc.CreateRecord(context.Background(), 1, validDeathReport(learner.ID))
	require.NoError(t, err)

	_, err = svc.GetRecordByID(context.Background(), 2, record.ID)
	assert.ErrorIs(t, err, apperrors.ErrDeceasedRecordNotFound)

	got, err := svc.GetRecordByID(context.Background(), 1, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
}

func TestCreateDeceasedRecord_UnknownLearner(t *testing.T) {
	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, newFakeLearnerStore())

	_, err := svc.CreateRecord(context.Background(), 1, validDeathReport(42))

	require.ErrorIs(t, err, apperrors.ErrLearnerNotFound)
	assert.Zero(t, store.createCalls)
}

func TestCreateDeceasedRecord_WrongInstitution(t *testing.T) {
	learners := newFakeLearnerStore()
	learner, err := NewLearnerService(learners).CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, learners)

	// Caller belongs to institution 2, the learner to institution 1
	_, err = svc.CreateRecord(context.Background(), 2, validDeathReport(learner.ID))

	require.ErrorIs(t, err, apperrors.ErrLearnerNotFound)
	assert.Zero(t, store.createCalls)
}

func TestCreateDeceasedRecord_AlreadyRecorded(t *testing.T) {
	learners := newFakeLearnerStore()
	learner, err := NewLearnerService(learners).CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, learners)

	_, err = svc.CreateRecord(context.Background(), 1, validDeathReport(learner.ID))
	require.NoError(t, err)

	_, err = svc.CreateRecord(context.Background(), 1, validDeathReport(learner.ID))
	require.ErrorIs(t, err, apperrors.ErrLearnerIsDeceased)
	assert.Equal(t, 1, store.createCalls)
}

func TestCreateDeceasedRecord_ValidationFailureNeverHitsStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateDeceasedRecordRequest)
	}{
		{"missing learner id", func(r *dto.CreateDeceasedRecordRequest) { r.LearnerID = 0 }},
		{"missing cause", func(r *dto.CreateDeceasedRecordRequest) { r.CauseOfDeath = " " }},
		{"missing reporter", func(r *dto.CreateDeceasedRecordRequest) { r.ReportedBy = "" }},
		{"bad date", func(r *dto.CreateDeceasedRecordRequest) { r.DateOfDeath = "02/03/2024" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeDeceasedStore()
			svc := NewDeceasedService(store, newFakeLearnerStore())

			req := validDeathReport(1)
			tt.mutate(req)

			_, err := svc.CreateRecord(context.Background(), 1, req)

			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, store.createCalls)
		})
	}
}

func TestListDeceasedRecords_SearchByLearnerName(t *testing.T) {
	learners := newFakeLearnerStore()
	learnerSvc := NewLearnerService(learners)

	first, err := learnerSvc.CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	second := validAdmission()
	second.UPI = "BS1002"
	second.FirstName = "Mary"
	second.LastName = "Adhiambo"
	other, err := learnerSvc.CreateLearner(context.Background(), 1, second)
	require.NoError(t, err)

	store := newFakeDeceasedStore()
	svc := NewDeceasedService(store, learners)

	_, err = svc.CreateRecord(context.Background(), 1, validDeathReport(first.ID))
	require.NoError(t, err)
	_, err = svc.CreateRecord(context.Background(), 1, validDeathReport(other.ID))
	require.NoError(t, err)

	records, pagination, err := svc.ListRecords(context.Background(), 1, &dto.DeceasedFilterRequest{Search: "adhiambo"}, 1, 20)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, other.ID, records[0].LearnerID)
	assert.Equal(t, 1, pagination.TotalItems)
}

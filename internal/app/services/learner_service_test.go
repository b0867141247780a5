package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

// fakeLearnerStore is an in-memory learnerStore that records how often it
// was called.
type fakeLearnerStore struct {
	learners    []*models.Learner
	nextID      int64
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeLearnerStore() *fakeLearnerStore {
	return &fakeLearnerStore{nextID: 1}
}

func (f *fakeLearnerStore) Create(ctx context.Context, learner *models.Learner) error {
	f.createCalls++
	for _, l := range f.learners {
		if l.UPI == learner.UPI {
			return apperrors.ErrUPIAlreadyExists
		}
	}
	learner.ID = f.nextID
	f.nextID++
	f.learners = append(f.learners, learner)
	return nil
}

func (f *fakeLearnerStore) GetByID(ctx context.Context, id int64) (*models.Learner, error) {
	for _, l := range f.learners {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, apperrors.ErrLearnerNotFound
}

func (f *fakeLearnerStore) GetByUPI(ctx context.Context, upi string) (*models.Learner, error) {
	for _, l := range f.learners {
		if l.UPI == upi {
			return l, nil
		}
	}
	return nil, apperrors.ErrLearnerNotFound
}

func (f *fakeLearnerStore) GetAllByInstitution(ctx context.Context, institutionID int64) ([]*models.Learner, error) {
	out := make([]*models.Learner, 0, len(f.learners))
	for _, l := range f.learners {
		if l.InstitutionID == institutionID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLearnerStore) Update(ctx context.Context, learner *models.Learner) error {
	f.updateCalls++
	return nil
}

func (f *fakeLearnerStore) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	return nil
}

func (f *fakeLearnerStore) AdmissionsByClass(ctx context.Context, institutionID int64, year int) (map[string][2]int, error) {
	counts := map[string][2]int{}
	for _, l := range f.learners {
		if l.InstitutionID != institutionID || l.AdmissionDate.Year() != year {
			continue
		}
		class := l.ClassName
		if class == "" {
			class = l.Course
		}
		c := counts[class]
		if l.Gender == "MALE" {
			c[0]++
		} else {
			c[1]++
		}
		counts[class] = c
	}
	return counts, nil
}

func validAdmission() *dto.CreateLearnerRequest {
	return &dto.CreateLearnerRequest{
		UPI:           "bs1001",
		FirstName:     "John",
		LastName:      "Wafula",
		Gender:        "male",
		DateOfBirth:   "2015-05-15",
		ProgramType:   "ECDE",
		Course:        "Pre-Primary",
		ClassName:     "PP1",
		AdmissionDate: "2024-01-10",
		GuardianName:  "Grace Wafula",
		GuardianPhone: "+254712345678",
	}
}

func TestCreateLearner(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	learner, err := svc.CreateLearner(context.Background(), 1, validAdmission())

	require.NoError(t, err)
	assert.Equal(t, int64(1), learner.ID)
	assert.Equal(t, "BS1001", learner.UPI, "UPI should be uppercased")
	assert.Equal(t, "MALE", learner.Gender)
	assert.Equal(t, models.LearnerActive, learner.Status)
	assert.Equal(t, int64(1), learner.InstitutionID)
	assert.Equal(t, 1, store.createCalls)
}

func TestCreateLearner_ValidationFailureNeverHitsStore(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateLearnerRequest)
	}{
		{"bad UPI", func(r *dto.CreateLearnerRequest) { r.UPI = "12345" }},
		{"missing first name", func(r *dto.CreateLearnerRequest) { r.FirstName = "  " }},
		{"missing course", func(r *dto.CreateLearnerRequest) { r.Course = "" }},
		{"bad guardian phone", func(r *dto.CreateLearnerRequest) { r.GuardianPhone = "0712345678" }},
		{"bad date of birth", func(r *dto.CreateLearnerRequest) { r.DateOfBirth = "15/05/2015" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeLearnerStore()
			svc := NewLearnerService(store)

			req := validAdmission()
			tt.mutate(req)

			_, err := svc.CreateLearner(context.Background(), 1, req)

			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Zero(t, store.createCalls, "store must not be touched on invalid input")
		})
	}
}

func TestCreateLearner_DuplicateUPI(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	_, err := svc.CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	_, err = svc.CreateLearner(context.Background(), 1, validAdmission())
	assert.ErrorIs(t, err, apperrors.ErrUPIAlreadyExists)
}

func TestListLearners_NewAdmissionIsDiscoverable(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	_, err := svc.CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	learners, pagination, err := svc.ListLearners(context.Background(), 1, &dto.LearnerFilterRequest{
		Search:      "john",
		ProgramType: "all",
		Status:      "all",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, "BS1001", learners[0].UPI)
	assert.Equal(t, 1, pagination.TotalItems)
}

func TestListLearners_AllSentinelFiltersReturnEverything(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	admit := func(upi, first, gender string) {
		req := validAdmission()
		req.UPI = upi
		req.FirstName = first
		req.Gender = gender
		_, err := svc.CreateLearner(context.Background(), 1, req)
		require.NoError(t, err)
	}
	admit("BS1001", "John", "MALE")
	admit("BS1002", "Mary", "FEMALE")
	admit("BS1003", "Peter", "MALE")

	learners, pagination, err := svc.ListLearners(context.Background(), 1, &dto.LearnerFilterRequest{
		ProgramType: "all",
		Course:      "all",
		Gender:      "all",
		Status:      "all",
	}, 1, 20)

	require.NoError(t, err)
	assert.Len(t, learners, 3)
	assert.Equal(t, 3, pagination.TotalItems)
	// Store order is preserved
	assert.Equal(t, "BS1001", learners[0].UPI)
	assert.Equal(t, "BS1002", learners[1].UPI)
	assert.Equal(t, "BS1003", learners[2].UPI)
}

func TestListLearners_GenderFilter(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	admit := func(upi, gender string) {
		req := validAdmission()
		req.UPI = upi
		req.Gender = gender
		_, err := svc.CreateLearner(context.Background(), 1, req)
		require.NoError(t, err)
	}
	admit("BS1001", "MALE")
	admit("BS1002", "FEMALE")
	admit("BS1003", "MALE")

	learners, _, err := svc.ListLearners(context.Background(), 1, &dto.LearnerFilterRequest{
		Gender: "female",
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, "BS1002", learners[0].UPI)
}

func TestListLearners_AgeRange(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	admit := func(upi string, yearsAgo int) {
		req := validAdmission()
		req.UPI = upi
		req.DateOfBirth = time.Now().AddDate(-yearsAgo, 0, -1).Format("2006-01-02")
		_, err := svc.CreateLearner(context.Background(), 1, req)
		require.NoError(t, err)
	}
	admit("BS1001", 4)
	admit("BS1002", 6)
	admit("BS1003", 17)

	from, to := 5, 10
	learners, _, err := svc.ListLearners(context.Background(), 1, &dto.LearnerFilterRequest{
		AgeFrom: &from,
		AgeTo:   &to,
	}, 1, 20)

	require.NoError(t, err)
	require.Len(t, learners, 1)
	assert.Equal(t, "BS1002", learners[0].UPI)
}

func TestListLearners_Pagination(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	for i := 0; i < 5; i++ {
		req := validAdmission()
		req.UPI = "BS100" + string(rune('1'+i))
		_, err := svc.CreateLearner(context.Background(), 1, req)
		require.NoError(t, err)
	}

	learners, pagination, err := svc.ListLearners(context.Background(), 1, nil, 2, 2)

	require.NoError(t, err)
	assert.Len(t, learners, 2)
	assert.Equal(t, 5, pagination.TotalItems)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, "BS1003", learners[0].UPI)
	assert.Equal(t, "BS1004", learners[1].UPI)
}

func TestUpdateLearner_DeceasedIsImmutable(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	learner, err := svc.CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)
	learner.Status = models.LearnerDeceased

	_, err = svc.UpdateLearner(context.Background(), 1, learner.ID, &dto.UpdateLearnerRequest{
		FirstName:   "John",
		LastName:    "Wafula",
		Gender:      "MALE",
		DateOfBirth: "2015-05-15",
		Course:      "Pre-Primary",
	})

	require.ErrorIs(t, err, apperrors.ErrLearnerIsDeceased)
	assert.Zero(t, store.updateCalls)
}

func TestLearnerByID_OtherInstitutionIsNotFound(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	learner, err := svc.CreateLearner(context.Background(), 1, validAdmission())
	require.NoError(t, err)

	_, err = svc.GetLearnerByID(context.Background(), 2, learner.ID)
	assert.ErrorIs(t, err, apperrors.ErrLearnerNotFound)

	_, err = svc.UpdateLearner(context.Background(), 2, learner.ID, &dto.UpdateLearnerRequest{
		FirstName:   "John",
		LastName:    "Wafula",
		Gender:      "MALE",
		DateOfBirth: "2015-05-15",
		Course:      "Pre-Primary",
	})
	assert.ErrorIs(t, err, apperrors.ErrLearnerNotFound)
	assert.Zero(t, store.updateCalls)

	err = svc.DeleteLearner(context.Background(), 2, learner.ID)
	assert.ErrorIs(t, err, apperrors.ErrLearnerNotFound)
	assert.Zero(t, store.deleteCalls)

	got, err := svc.GetLearnerByID(context.Background(), 1, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, learner.ID, got.ID)
}

func TestAdmissionReport(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	admit := func(upi, class, gender string) {
		req := validAdmission()
		req.UPI = upi
		req.ClassName = class
		req.Gender = gender
		_, err := svc.CreateLearner(context.Background(), 1, req)
		require.NoError(t, err)
	}
	admit("BS1001", "PP1", "MALE")
	admit("BS1002", "PP1", "FEMALE")
	admit("BS1003", "PP2", "FEMALE")

	report, err := svc.AdmissionReport(context.Background(), 1, 2024)

	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "PP1", report.Rows[0].ClassName)
	assert.Equal(t, 1, report.Rows[0].Male)
	assert.Equal(t, 1, report.Rows[0].Female)
	assert.Equal(t, 2, report.Rows[0].Total)
	assert.Equal(t, "PP2", report.Rows[1].ClassName)
	assert.Equal(t, 1, report.TotalMale)
	assert.Equal(t, 2, report.TotalFemale)
	assert.Equal(t, 3, report.GrandTotal)
}

func TestAdmissionReport_EmptyYear(t *testing.T) {
	store := newFakeLearnerStore()
	svc := NewLearnerService(store)

	report, err := svc.AdmissionReport(context.Background(), 1, time.Now().Year())

	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Zero(t, report.GrandTotal)
}

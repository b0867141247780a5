package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/pkg/apperrors"
)

// stubInstitutionService records the IDs it was asked for and returns
// canned results.
type stubInstitutionService struct {
	requestedID  int64
	institutions []*models.Institution
	listErr      error
}

func (s *stubInstitutionService) SetupInstitution(ctx context.Context, userID int64, req *dto.CreateInstitutionRequest) (*models.Institution, error) {
	return nil, errors.New("not implemented")
}

func (s *stubInstitutionService) GetInstitutionByID(ctx context.Context, id int64) (*models.Institution, error) {
	s.requestedID = id
	for _, i := range s.institutions {
		if i.ID == id {
			return i, nil
		}
	}
	return nil, apperrors.ErrInstitutionNotFound
}

func (s *stubInstitutionService) GetAllInstitutions(ctx context.Context) ([]*models.Institution, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.institutions, nil
}

func (s *stubInstitutionService) UpdateInstitution(ctx context.Context, id int64, req *dto.UpdateInstitutionRequest) (*models.Institution, error) {
	return nil, errors.New("not implemented")
}

func newInstitutionRouter(svc *stubInstitutionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewInstitutionController(svc)

	router := gin.New()
	router.GET("/api/v1/institutions", controller.GetAllInstitutions)
	router.GET("/api/v1/institutions/:id", controller.GetInstitutionByID)
	return router
}

func TestGetInstitutionByID_ParsesPathID(t *testing.T) {
	svc := &stubInstitutionService{
		institutions: []*models.Institution{
			{ID: 1, Name: "St Joseph ECDE Centre", Type: models.ProgramECDE, RegistrationNo: "ECDE001", County: "Busia"},
		},
	}
	router := newInstitutionRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institutions/1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.requestedID, "path id must reach the service as an integer")

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.InstitutionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(1), body.Data.ID)
	assert.Equal(t, "St Joseph ECDE Centre", body.Data.Name)
}

func TestGetInstitutionByID_BadID(t *testing.T) {
	router := newInstitutionRouter(&stubInstitutionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institutions/not-a-number", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestGetInstitutionByID_NotFound(t *testing.T) {
	router := newInstitutionRouter(&stubInstitutionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institutions/42", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
}

func TestGetAllInstitutions(t *testing.T) {
	svc := &stubInstitutionService{
		institutions: []*models.Institution{
			{ID: 1, Name: "Bumala Vocational Centre", Type: models.ProgramVocational},
			{ID: 2, Name: "St Joseph ECDE Centre", Type: models.ProgramECDE},
		},
	}
	router := newInstitutionRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institutions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool                        `json:"success"`
		Data    dto.InstitutionListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Institutions, 2)
	assert.Equal(t, "Bumala Vocational Centre", body.Data.Institutions[0].Name)
}

func TestGetAllInstitutions_FailureUsesErrorEnvelope(t *testing.T) {
	svc := &stubInstitutionService{listErr: errors.New("connection refused")}
	router := newInstitutionRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/institutions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
}

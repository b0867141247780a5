package routes

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/busiadev/ecdeavotmis/internal/app/controllers"
	"github.com/busiadev/ecdeavotmis/internal/app/models"
	"github.com/busiadev/ecdeavotmis/internal/app/models/dto"
	"github.com/busiadev/ecdeavotmis/internal/middleware"
	"github.com/busiadev/ecdeavotmis/internal/pkg/auth"
)

// stubReceiptService answers receipt calls without a database so routing
// and middleware ordering can be exercised end to end.
type stubReceiptService struct {
	verifiedIDs []int64
}

func (s *stubReceiptService) UploadReceipt(ctx context.Context, institutionID, userID int64, req *dto.UploadReceiptRequest, file *multipart.FileHeader) (*models.CapitationReceipt, error) {
	return nil, nil
}

func (s *stubReceiptService) GetReceiptByID(ctx context.Context, institutionID, id int64) (*models.CapitationReceipt, error) {
	return nil, nil
}

func (s *stubReceiptService) ListReceipts(ctx context.Context, institutionID int64, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error) {
	return nil, dto.NewPaginationInfo(0, page, size), nil
}

func (s *stubReceiptService) ListCountyReceipts(ctx context.Context, filter *dto.ReceiptFilterRequest, page, size int) ([]*models.CapitationReceipt, dto.PaginationInfo, error) {
	return []*models.CapitationReceipt{}, dto.NewPaginationInfo(0, page, size), nil
}

func (s *stubReceiptService) VerifyReceipt(ctx context.Context, id, verifiedBy int64) (*models.CapitationReceipt, error) {
	s.verifiedIDs = append(s.verifiedIDs, id)
	return &models.CapitationReceipt{ID: id, InstitutionID: 1, Status: models.ReceiptVerified, VerifiedBy: &verifiedBy}, nil
}

func (s *stubReceiptService) DeleteReceipt(ctx context.Context, institutionID, id int64) error {
	return nil
}

func testRouter(t *testing.T) (*gin.Engine, *stubReceiptService, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	receipts := &stubReceiptService{}

	// Only the receipt controller is called in these tests; the rest
	// just need to exist so every route can register.
	SetupRouter(router,
		controllers.NewAuthController(nil),
		controllers.NewInstitutionController(nil),
		controllers.NewLearnerController(nil),
		controllers.NewAssetController(nil),
		controllers.NewBookController(nil),
		controllers.NewReceiptController(receipts),
		controllers.NewDeceasedController(nil),
		controllers.NewDashboardController(nil),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router, receipts, jwtService
}

func countyAdminToken(t *testing.T, svc *auth.JWTService) string {
	t.Helper()
	user := &models.User{ID: 9, Email: "county@busia.go.ke", InstitutionID: nil}
	token, _, _, _, err := svc.GenerateTokenPair(user, models.RoleCountyAdmin)
	require.NoError(t, err)
	return token
}

func TestCountyAdminCanVerifyReceipt(t *testing.T) {
	router, receipts, jwtService := testRouter(t)
	token := countyAdminToken(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/receipts/5/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, receipts.verifiedIDs)
}

func TestCountyAdminCanListCountyReceipts(t *testing.T) {
	router, _, jwtService := testRouter(t)
	token := countyAdminToken(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/county/receipts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCountyAdminBlockedFromInstitutionRoutes(t *testing.T) {
	router, _, jwtService := testRouter(t)
	token := countyAdminToken(t, jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/learners", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInstitutionAdminCannotVerifyReceipt(t *testing.T) {
	router, receipts, jwtService := testRouter(t)
	institutionID := int64(1)
	user := &models.User{ID: 4, Email: "admin@township.ac.ke", InstitutionID: &institutionID}
	token, _, _, _, err := jwtService.GenerateTokenPair(user, models.RoleInstitutionAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/receipts/5/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, receipts.verifiedIDs)
}

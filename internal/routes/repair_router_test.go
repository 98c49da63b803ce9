package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repair-system/internal/controllers"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/pkg/customvalidator"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"
	"repair-system/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRepairService struct {
	historyTag    *int64
	historySerial *string
	history       []dto.RepairHistoryDTO
}

func (s *stubRepairService) CreateRepair(ctx context.Context, actor *entities.Staff, payload dto.CreateRepairDTO) (*dto.RepairDTO, error) {
	return &dto.RepairDTO{ID: 1, Status: entities.RepairPending}, nil
}

func (s *stubRepairService) Decide(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.DecideRepairDTO) (*dto.RepairDTO, error) {
	return &dto.RepairDTO{ID: repairID, Status: payload.Status}, nil
}

func (s *stubRepairService) Complete(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.CompleteRepairDTO) (*dto.RepairDTO, error) {
	return &dto.RepairDTO{ID: repairID, Status: entities.RepairCompleted}, nil
}

func (s *stubRepairService) GetHistory(ctx context.Context, actor *entities.Staff, tagNumber *int64, serialNumber *string) ([]dto.RepairHistoryDTO, error) {
	s.historyTag = tagNumber
	s.historySerial = serialNumber
	if tagNumber == nil && serialNumber == nil {
		return []dto.RepairHistoryDTO{}, nil
	}
	return s.history, nil
}

type stubStaffService struct {
	staff *entities.Staff
}

func (s *stubStaffService) GetStaffList(ctx context.Context, actor *entities.Staff) ([]dto.StaffDTO, error) {
	return []dto.StaffDTO{}, nil
}

func (s *stubStaffService) FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error) {
	return s.staff, nil
}

func newRepairTestRouter(t *testing.T, repairSvc *stubRepairService) (*echo.Echo, string) {
	t.Helper()

	e := echo.New()
	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	logger := zap.NewNop()
	jwtSvc := service.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	staffSvc := &stubStaffService{staff: &entities.Staff{
		ID:        7,
		Username:  "i.rahimov",
		FirstName: "Икром",
		LastName:  "Рахимов",
		Role:      entities.RoleStaff,
	}}

	ctrl := controllers.NewRepairController(repairSvc, staffSvc, logger)
	runRepairRouter(e.Group("/api"), ctrl, authMW)

	accessToken, _, err := jwtSvc.GenerateTokens(7)
	require.NoError(t, err)
	return e, accessToken
}

func TestRepairHistoryRouteRequiresAuth(t *testing.T) {
	e, _ := newRepairTestRouter(t, &stubRepairService{})

	req := httptest.NewRequest(http.MethodGet, "/api/repairs/repair-history", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRepairHistoryRouteWithoutKeysReturnsEmptyList(t *testing.T) {
	svc := &stubRepairService{}
	e, token := newRepairTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/repairs/repair-history", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Status bool                   `json:"status"`
		Body   []dto.RepairHistoryDTO `json:"body"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Status)
	assert.NotNil(t, response.Body)
	assert.Empty(t, response.Body)

	assert.Nil(t, svc.historyTag)
	assert.Nil(t, svc.historySerial)
}

func TestRepairHistoryRoutePassesQueryKeys(t *testing.T) {
	svc := &stubRepairService{history: []dto.RepairHistoryDTO{{ID: 3}}}
	e, token := newRepairTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/repairs/repair-history?tag_number=1024", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.historyTag)
	assert.Equal(t, int64(1024), *svc.historyTag)
	assert.Nil(t, svc.historySerial)
}

func TestRepairHistoryRouteRejectsBadTagNumber(t *testing.T) {
	e, token := newRepairTestRouter(t, &stubRepairService{})

	req := httptest.NewRequest(http.MethodGet, "/api/repairs/repair-history?tag_number=abc", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

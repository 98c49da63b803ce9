package services

import (
	"context"
	"testing"
	"time"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/types"
	"repair-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Фейковые зависимости для юнит-тестов жизненного цикла ---

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeRepairRepo struct {
	repairs      map[uint64]*entities.Repair
	nextID       uint64
	updateCalled bool
	history      []repositories.HistoryRow
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: make(map[uint64]*entities.Repair), nextID: 1}
}

func (r *fakeRepairRepo) CreateRepair(ctx context.Context, equipmentID, staffID uint64, remark string) (*entities.Repair, error) {
	rep := &entities.Repair{
		ID:          r.nextID,
		EquipmentID: equipmentID,
		StaffID:     staffID,
		Status:      entities.RepairPending,
		CreatedAt:   time.Now(),
	}
	if remark != "" {
		rep.Remark = &remark
	}
	r.repairs[rep.ID] = rep
	r.nextID++
	return rep, nil
}

func (r *fakeRepairRepo) FindRepair(ctx context.Context, id uint64) (*entities.Repair, error) {
	rep, ok := r.repairs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *rep
	return &copied, nil
}

func (r *fakeRepairRepo) FindRepairForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Repair, error) {
	return r.FindRepair(ctx, id)
}

func (r *fakeRepairRepo) UpdateRepairInTx(ctx context.Context, tx pgx.Tx, repair *entities.Repair) error {
	if _, ok := r.repairs[repair.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.updateCalled = true
	copied := *repair
	r.repairs[repair.ID] = &copied
	return nil
}

func (r *fakeRepairRepo) GetHistoryByEquipment(ctx context.Context, equipmentID uint64) ([]repositories.HistoryRow, error) {
	return r.history, nil
}

type fakeRepairPartRepo struct {
	replaceCalled bool
	replaced      []dto.RepairPartInputDTO
	usage         map[uint64][]dto.RepairPartUsageDTO
}

func (r *fakeRepairPartRepo) ReplaceForRepairInTx(ctx context.Context, tx pgx.Tx, repairID uint64, entries []dto.RepairPartInputDTO) error {
	r.replaceCalled = true
	r.replaced = entries
	return nil
}

func (r *fakeRepairPartRepo) LedgerForRepair(ctx context.Context, repairID uint64) ([]entities.RepairPart, error) {
	return []entities.RepairPart{}, nil
}

func (r *fakeRepairPartRepo) UsageForRepair(ctx context.Context, repairID uint64) ([]dto.RepairPartUsageDTO, error) {
	return r.usage[repairID], nil
}

func (r *fakeRepairPartRepo) UsageForRepairs(ctx context.Context, repairIDs []uint64) (map[uint64][]dto.RepairPartUsageDTO, error) {
	return r.usage, nil
}

type fakePartRepo struct {
	known      map[uint64]struct{}
	parts      map[uint64]*entities.Part
	usageCount int64
	deleted    []uint64
}

func (r *fakePartRepo) GetParts(ctx context.Context) ([]entities.Part, error) { return nil, nil }

func (r *fakePartRepo) FindPart(ctx context.Context, id uint64) (*entities.Part, error) {
	if p, ok := r.parts[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakePartRepo) CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*entities.Part, error) {
	return &entities.Part{ID: 1, Name: payload.Name, Description: payload.Description}, nil
}

func (r *fakePartRepo) UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakePartRepo) DeletePart(ctx context.Context, id uint64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakePartRepo) UsageCount(ctx context.Context, id uint64) (int64, error) {
	return r.usageCount, nil
}
func (r *fakePartRepo) ResolvePartIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]struct{}, error) {
	found := make(map[uint64]struct{})
	for _, id := range ids {
		if _, ok := r.known[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

type fakeStaffRepo struct {
	staff map[uint64]*entities.Staff
}

func (r *fakeStaffRepo) GetStaffList(ctx context.Context) ([]entities.Staff, error) {
	return nil, nil
}

func (r *fakeStaffRepo) FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error) {
	s, ok := r.staff[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return s, nil
}

func (r *fakeStaffRepo) FindStaffByLogin(ctx context.Context, login string) (*entities.Staff, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeStaffRepo) FindStaffByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeStaffRepo) CreateStaff(ctx context.Context, payload dto.RegisterStaffDTO, hashedPassword string) (*entities.Staff, error) {
	return nil, nil
}

func (r *fakeStaffRepo) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	return nil
}

type fakeEquipmentRepo struct {
	equipments map[uint64]*entities.Equipment
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	return nil, 0, nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrUnknownEquipment
	}
	return e, nil
}

func (r *fakeEquipmentRepo) FindEquipmentByTagNumber(ctx context.Context, tagNumber int64) (*entities.Equipment, error) {
	for _, e := range r.equipments {
		if e.TagNumber == tagNumber {
			return e, nil
		}
	}
	return nil, apperrors.ErrUnknownEquipment
}

func (r *fakeEquipmentRepo) FindEquipmentBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error) {
	for _, e := range r.equipments {
		if e.SerialNumber == serialNumber {
			return e, nil
		}
	}
	return nil, apperrors.ErrUnknownEquipment
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, addedBy uint64) (*entities.Equipment, error) {
	return nil, nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

// --- Вспомогательная сборка сервиса ---

type repairFixture struct {
	service    RepairServiceInterface
	repairs    *fakeRepairRepo
	parts      *fakeRepairPartRepo
	partRepo   *fakePartRepo
	staffRepo  *fakeStaffRepo
	equipments *fakeEquipmentRepo
}

func newRepairFixture() *repairFixture {
	repairs := newFakeRepairRepo()
	parts := &fakeRepairPartRepo{usage: make(map[uint64][]dto.RepairPartUsageDTO)}
	partRepo := &fakePartRepo{known: map[uint64]struct{}{1: {}, 2: {}, 3: {}}}
	staffRepo := &fakeStaffRepo{staff: map[uint64]*entities.Staff{
		1: {ID: 1, FirstName: "Админ", LastName: "Системы", Role: entities.RoleAdmin},
		2: {ID: 2, FirstName: "Икром", LastName: "Рахимов", Role: entities.RoleStaff},
		3: {ID: 3, FirstName: "Фарангис", LastName: "Каримова", Role: entities.RoleStaff},
	}}
	equipments := &fakeEquipmentRepo{equipments: map[uint64]*entities.Equipment{
		10: {ID: 10, TagNumber: 10001, SerialNumber: "SN-CMP-0001", BranchID: 1},
	}}

	return &repairFixture{
		service: NewRepairService(
			&fakeTxManager{}, repairs, parts, partRepo, staffRepo, equipments, zap.NewNop(),
		),
		repairs:    repairs,
		parts:      parts,
		partRepo:   partRepo,
		staffRepo:  staffRepo,
		equipments: equipments,
	}
}

func (f *repairFixture) admin() *entities.Staff { return f.staffRepo.staff[1] }
func (f *repairFixture) staff() *entities.Staff { return f.staffRepo.staff[2] }

func (f *repairFixture) seedRepair(t *testing.T, status string, repairStaffID *uint64) *entities.Repair {
	t.Helper()
	rep, err := f.repairs.CreateRepair(context.Background(), 10, 2, "не включается")
	require.NoError(t, err)
	rep.Status = status
	rep.RepairStaffID = repairStaffID
	f.repairs.repairs[rep.ID] = rep
	return rep
}

// --- Создание заявки ---

func TestRepairService_CreateRepair(t *testing.T) {
	f := newRepairFixture()

	result, err := f.service.CreateRepair(context.Background(), f.staff(), dto.CreateRepairDTO{
		EquipmentID: 10,
		Remark:      "не включается",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RepairPending, result.Status)
	assert.Equal(t, uint64(10), result.EquipmentID)
	assert.Equal(t, uint64(2), result.StaffID)
}

func TestRepairService_CreateRepair_UnknownEquipment(t *testing.T) {
	f := newRepairFixture()

	_, err := f.service.CreateRepair(context.Background(), f.staff(), dto.CreateRepairDTO{EquipmentID: 999})
	assert.ErrorIs(t, err, apperrors.ErrUnknownEquipment)
}

func TestRepairService_CreateRepair_DuplicateOpenAllowed(t *testing.T) {
	f := newRepairFixture()

	_, err := f.service.CreateRepair(context.Background(), f.staff(), dto.CreateRepairDTO{EquipmentID: 10})
	require.NoError(t, err)
	_, err = f.service.CreateRepair(context.Background(), f.staff(), dto.CreateRepairDTO{EquipmentID: 10})
	assert.NoError(t, err, "повторная открытая заявка на то же оборудование разрешена")
}

// --- Решение по заявке ---

func TestRepairService_Decide_ApproveWithAssignee(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairPending, nil)

	result, err := f.service.Decide(context.Background(), f.admin(), rep.ID, dto.DecideRepairDTO{
		Status:        entities.RepairApproved,
		RepairStaffID: null.IntFrom(2),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RepairApproved, result.Status)
	assert.NotNil(t, result.ApprovedAt)
	require.NotNil(t, result.RepairStaffID)
	assert.Equal(t, uint64(2), *result.RepairStaffID)
}

func TestRepairService_Decide_ForbiddenForStaff(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairPending, nil)

	_, err := f.service.Decide(context.Background(), f.staff(), rep.ID, dto.DecideRepairDTO{
		Status: entities.RepairApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRepairService_Decide_UnknownAssigneeLeavesRepairUntouched(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairPending, nil)

	_, err := f.service.Decide(context.Background(), f.admin(), rep.ID, dto.DecideRepairDTO{
		Status:        entities.RepairApproved,
		RepairStaffID: null.IntFrom(999),
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownStaff)

	stored, err := f.repairs.FindRepair(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.RepairPending, stored.Status, "заявка не должна измениться")
	assert.False(t, f.repairs.updateCalled)
}

func TestRepairService_Decide_RejectWithAssigneeRejected(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairPending, nil)

	_, err := f.service.Decide(context.Background(), f.admin(), rep.ID, dto.DecideRepairDTO{
		Status:        entities.RepairRejected,
		RepairStaffID: null.IntFrom(2),
	})

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
	assert.False(t, f.repairs.updateCalled)
}

func TestRepairService_Decide_Reject(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairPending, nil)

	result, err := f.service.Decide(context.Background(), f.admin(), rep.ID, dto.DecideRepairDTO{
		Status: entities.RepairRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RepairRejected, result.Status)
	assert.Nil(t, result.ApprovedAt)
}

func TestRepairService_Decide_InvalidTransitions(t *testing.T) {
	f := newRepairFixture()

	for _, status := range []string{entities.RepairApproved, entities.RepairRejected, entities.RepairCompleted} {
		rep := f.seedRepair(t, status, nil)
		_, err := f.service.Decide(context.Background(), f.admin(), rep.ID, dto.DecideRepairDTO{
			Status: entities.RepairApproved,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "статус %s не допускает решения", status)
	}
}

func TestRepairService_Decide_NotFound(t *testing.T) {
	f := newRepairFixture()

	_, err := f.service.Decide(context.Background(), f.admin(), 42, dto.DecideRepairDTO{
		Status: entities.RepairApproved,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- Завершение ремонта ---

func TestRepairService_Complete(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	result, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "заменён блок питания",
		Parts: []dto.RepairPartInputDTO{
			{PartID: 1, Quantity: 2},
			{PartID: 3, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RepairCompleted, result.Status)
	assert.NotNil(t, result.CompletedAt)
	require.NotNil(t, result.Report)
	assert.Equal(t, "заменён блок питания", *result.Report)
	assert.True(t, f.parts.replaceCalled)
	assert.Len(t, f.parts.replaced, 2)
}

func TestRepairService_Complete_EmptyPartsAllowed(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	result, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "обошлось без запчастей",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.RepairCompleted, result.Status)
	assert.True(t, f.parts.replaceCalled, "пустой список тоже заменяет журнал")
	assert.Empty(t, f.parts.replaced)
}

func TestRepairService_Complete_NotAssignedRepairer(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(3))

	_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAssignedRepairer)
	assert.False(t, f.parts.replaceCalled, "журнал не должен быть тронут")
}

func TestRepairService_Complete_AdminIsNotAssignee(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	// Роль администратора не обходит объектное правило исполнителя.
	_, err := f.service.Complete(context.Background(), f.admin(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAssignedRepairer)
}

func TestRepairService_Complete_NoAssignee(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, nil)

	_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotAssignedRepairer)
}

func TestRepairService_Complete_InvalidTransition(t *testing.T) {
	f := newRepairFixture()

	for _, status := range []string{entities.RepairPending, entities.RepairRejected, entities.RepairCompleted} {
		rep := f.seedRepair(t, status, utils.Uint64Ptr(2))
		_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
			Status: entities.RepairCompleted,
			Report: "отчёт",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "статус %s не допускает завершения", status)
	}
}

func TestRepairService_Complete_UnknownPartLeavesLedgerUntouched(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
		Parts:  []dto.RepairPartInputDTO{{PartID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, apperrors.ErrUnknownPart)
	assert.False(t, f.parts.replaceCalled)

	stored, findErr := f.repairs.FindRepair(context.Background(), rep.ID)
	require.NoError(t, findErr)
	assert.Equal(t, entities.RepairApproved, stored.Status)
}

func TestRepairService_Complete_DuplicatePart(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
		Parts: []dto.RepairPartInputDTO{
			{PartID: 1, Quantity: 1},
			{PartID: 1, Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePartInUsage)
	assert.False(t, f.parts.replaceCalled)
}

func TestRepairService_Complete_ZeroQuantity(t *testing.T) {
	f := newRepairFixture()
	rep := f.seedRepair(t, entities.RepairApproved, utils.Uint64Ptr(2))

	_, err := f.service.Complete(context.Background(), f.staff(), rep.ID, dto.CompleteRepairDTO{
		Status: entities.RepairCompleted,
		Report: "отчёт",
		Parts:  []dto.RepairPartInputDTO{{PartID: 1, Quantity: 0}},
	})

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
	assert.False(t, f.parts.replaceCalled)
}

// --- История ремонтов ---

func TestRepairService_GetHistory_NoSearchKeys(t *testing.T) {
	f := newRepairFixture()

	history, err := f.service.GetHistory(context.Background(), f.staff(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRepairService_GetHistory_UnknownEquipment(t *testing.T) {
	f := newRepairFixture()
	tag := int64(77777)

	_, err := f.service.GetHistory(context.Background(), f.staff(), &tag, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnknownEquipment)
}

func TestRepairService_GetHistory(t *testing.T) {
	f := newRepairFixture()
	name := "Икром Рахимов"
	completedAt := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	f.repairs.history = []repositories.HistoryRow{
		{
			Repair: entities.Repair{
				ID: 2, EquipmentID: 10, StaffID: 2,
				Status:      entities.RepairCompleted,
				CompletedAt: &completedAt,
				CreatedAt:   time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
			},
			RepairStaffName: &name,
			BranchName:      "Головной офис",
		},
		{
			Repair: entities.Repair{
				ID: 1, EquipmentID: 10, StaffID: 2,
				Status:    entities.RepairRejected,
				CreatedAt: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
			},
			BranchName: "Головной офис",
		},
	}
	f.parts.usage = map[uint64][]dto.RepairPartUsageDTO{
		2: {{PartName: "Вентилятор охлаждения", Quantity: 2}},
	}

	tag := int64(10001)
	history, err := f.service.GetHistory(context.Background(), f.staff(), &tag, nil)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, uint64(2), history[0].ID)
	assert.Equal(t, "Головной офис", history[0].EquipmentBranch)
	require.NotNil(t, history[0].RepairStaffName)
	assert.Equal(t, "Икром Рахимов", *history[0].RepairStaffName)
	require.Len(t, history[0].Parts, 1)
	assert.Equal(t, int64(2), history[0].Parts[0].Quantity)

	assert.Equal(t, uint64(1), history[1].ID)
	assert.Empty(t, history[1].Parts, "у заявки без журнала — пустой список, не nil")
	assert.NotNil(t, history[1].Parts)
}

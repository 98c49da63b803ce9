package repositories

import (
	"context"
	"testing"

	"repair-system/internal/dto"
	"repair-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// completeRepairWithParts доводит заявку до completed с заданным журналом.
func completeRepairWithParts(t *testing.T, repairRepo RepairRepositoryInterface, partLedger RepairPartRepositoryInterface, repairID, repairStaffID uint64, parts []dto.RepairPartInputDTO) {
	t.Helper()
	ctx := context.Background()

	err := WithTx(ctx, testPool, func(tx pgx.Tx) error {
		repair, txErr := repairRepo.FindRepairForUpdateInTx(ctx, tx, repairID)
		if txErr != nil {
			return txErr
		}
		repair.Status = entities.RepairCompleted
		repair.RepairStaffID = &repairStaffID
		if txErr = repairRepo.UpdateRepairInTx(ctx, tx, repair); txErr != nil {
			return txErr
		}
		return partLedger.ReplaceForRepairInTx(ctx, tx, repairID, parts)
	})
	require.NoError(t, err)
}

func TestStatsRepository_Integration_TopRepairStaff(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	staffID, repairStaffID, equipmentID, partFanID, _ := seedData(t, testPool)

	repairRepo := NewRepairRepository(testPool)
	partLedger := NewRepairPartRepository(testPool)
	statsRepo := NewStatsRepository(testPool, zap.NewNop())
	ctx := context.Background()

	// Два завершённых ремонта у Икрома, один — у второго исполнителя.
	var otherID uint64
	err := testPool.QueryRow(ctx, `
		INSERT INTO staff (username, email, first_name, last_name, role, password)
		VALUES ('a.olimov', 'a.olimov@example.com', 'Азиз', 'Олимов', 'staff', 'x')
		RETURNING id`).Scan(&otherID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rep, createErr := repairRepo.CreateRepair(ctx, equipmentID, staffID, "")
		require.NoError(t, createErr)
		completeRepairWithParts(t, repairRepo, partLedger, rep.ID, repairStaffID, nil)
	}
	rep, err := repairRepo.CreateRepair(ctx, equipmentID, staffID, "")
	require.NoError(t, err)
	completeRepairWithParts(t, repairRepo, partLedger, rep.ID, otherID, []dto.RepairPartInputDTO{
		{PartID: partFanID, Quantity: 5},
	})

	top, err := statsRepo.GetTopRepairStaff(ctx)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Икром Рахимов", top[0].GroupName)
	assert.Equal(t, int64(2), top[0].Count)
	assert.Equal(t, "Азиз Олимов", top[1].GroupName)

	parts, err := statsRepo.GetTopUsedParts(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Вентилятор охлаждения", parts[0].GroupName)
	assert.Equal(t, int64(5), parts[0].Total)
}

func TestStatsRepository_Integration_PartBranchUsageOrder(t *testing.T) {
	require.NotNil(t, testPool)
	cleanupTables(t, testPool)
	staffID, repairStaffID, equipmentID, partFanID, partPsuID := seedData(t, testPool)

	repairRepo := NewRepairRepository(testPool)
	partLedger := NewRepairPartRepository(testPool)
	statsRepo := NewStatsRepository(testPool, zap.NewNop())
	ctx := context.Background()

	// Блок питания попадает в журнал первым и должен идти первым в матрице,
	// хотя расход вентиляторов больше.
	first, err := repairRepo.CreateRepair(ctx, equipmentID, staffID, "")
	require.NoError(t, err)
	completeRepairWithParts(t, repairRepo, partLedger, first.ID, repairStaffID, []dto.RepairPartInputDTO{
		{PartID: partPsuID, Quantity: 1},
	})

	second, err := repairRepo.CreateRepair(ctx, equipmentID, staffID, "")
	require.NoError(t, err)
	completeRepairWithParts(t, repairRepo, partLedger, second.ID, repairStaffID, []dto.RepairPartInputDTO{
		{PartID: partFanID, Quantity: 10},
	})

	usage, err := statsRepo.GetPartBranchUsage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, "Блок питания 450Вт", usage[0].PartName)
	assert.Equal(t, "Вентилятор охлаждения", usage[1].PartName)
	assert.Equal(t, int64(10), usage[1].Total)
}

func TestStatsRepository_Integration_EmptyDatabase(t *testing.T) {
	require.NotNil(t, testPool)
	cleanupTables(t, testPool)

	statsRepo := NewStatsRepository(testPool, zap.NewNop())
	ctx := context.Background()

	monthly, err := statsRepo.GetMonthlyRepairs(ctx)
	require.NoError(t, err)
	assert.Empty(t, monthly)

	workload, err := statsRepo.GetStaffWorkload(ctx)
	require.NoError(t, err)
	assert.Empty(t, workload)
}

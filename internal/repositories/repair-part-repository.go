package repositories

import (
	"context"
	"fmt"

	"repair-system/internal/dto"
	"repair-system/internal/entities"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepairPartRepository — журнал расхода запчастей. Запись доступна только
// внутри транзакции завершения ремонта: журнал заменяется целиком,
// частичных правок не бывает.
type RepairPartRepositoryInterface interface {
	ReplaceForRepairInTx(ctx context.Context, tx pgx.Tx, repairID uint64, entries []dto.RepairPartInputDTO) error
	LedgerForRepair(ctx context.Context, repairID uint64) ([]entities.RepairPart, error)
	UsageForRepair(ctx context.Context, repairID uint64) ([]dto.RepairPartUsageDTO, error)
	UsageForRepairs(ctx context.Context, repairIDs []uint64) (map[uint64][]dto.RepairPartUsageDTO, error)
}

type RepairPartRepository struct {
	storage *pgxpool.Pool
}

func NewRepairPartRepository(storage *pgxpool.Pool) RepairPartRepositoryInterface {
	return &RepairPartRepository{storage: storage}
}

// ReplaceForRepairInTx удаляет весь журнал заявки и вставляет новый набор.
// Вызывается строго под блокировкой строки заявки (FOR UPDATE).
func (r *RepairPartRepository) ReplaceForRepairInTx(ctx context.Context, tx pgx.Tx, repairID uint64, entries []dto.RepairPartInputDTO) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM repair_parts WHERE repair_id = $1`, repairID); err != nil {
		return fmt.Errorf("ошибка очистки журнала запчастей: %w", err)
	}

	for _, entry := range entries {
		if _, err := tx.Exec(ctx, `
			INSERT INTO repair_parts (repair_id, part_id, quantity)
			VALUES ($1, $2, $3)`,
			repairID, entry.PartID, entry.Quantity,
		); err != nil {
			return fmt.Errorf("ошибка вставки строки журнала запчастей: %w", err)
		}
	}
	return nil
}

// LedgerForRepair возвращает строки журнала заявки как есть, включая
// отметку времени вставки, в порядке появления.
func (r *RepairPartRepository) LedgerForRepair(ctx context.Context, repairID uint64) ([]entities.RepairPart, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, repair_id, part_id, quantity, created_at
		FROM repair_parts
		WHERE repair_id = $1
		ORDER BY id`, repairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]entities.RepairPart, 0)
	for rows.Next() {
		var entry entities.RepairPart
		if err := rows.Scan(&entry.ID, &entry.RepairID, &entry.PartID, &entry.Quantity, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *RepairPartRepository) UsageForRepair(ctx context.Context, repairID uint64) ([]dto.RepairPartUsageDTO, error) {
	usage, err := r.UsageForRepairs(ctx, []uint64{repairID})
	if err != nil {
		return nil, err
	}
	if list, ok := usage[repairID]; ok {
		return list, nil
	}
	return []dto.RepairPartUsageDTO{}, nil
}

func (r *RepairPartRepository) UsageForRepairs(ctx context.Context, repairIDs []uint64) (map[uint64][]dto.RepairPartUsageDTO, error) {
	result := make(map[uint64][]dto.RepairPartUsageDTO, len(repairIDs))
	if len(repairIDs) == 0 {
		return result, nil
	}

	rows, err := r.storage.Query(ctx, `
		SELECT rp.repair_id, p.name, rp.quantity
		FROM repair_parts rp
		JOIN parts p ON rp.part_id = p.id
		WHERE rp.repair_id = ANY($1)
		ORDER BY rp.id`, repairIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var repairID uint64
		var usage dto.RepairPartUsageDTO
		if err := rows.Scan(&repairID, &usage.PartName, &usage.Quantity); err != nil {
			return nil, err
		}
		result[repairID] = append(result[repairID], usage)
	}
	return result, rows.Err()
}

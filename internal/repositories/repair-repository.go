package repositories

import (
	"context"
	"fmt"

	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repairFields = `
	id, equipment_id, staff_id, remark, status, approved_at,
	completed_at, repair_staff_id, report, created_at`

// HistoryRow — заявка в истории ремонтов вместе с именем исполнителя
// и названием филиала оборудования.
type HistoryRow struct {
	Repair          entities.Repair
	RepairStaffName *string
	BranchName      string
}

type RepairRepositoryInterface interface {
	CreateRepair(ctx context.Context, equipmentID, staffID uint64, remark string) (*entities.Repair, error)
	FindRepair(ctx context.Context, id uint64) (*entities.Repair, error)
	FindRepairForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Repair, error)
	UpdateRepairInTx(ctx context.Context, tx pgx.Tx, repair *entities.Repair) error
	GetHistoryByEquipment(ctx context.Context, equipmentID uint64) ([]HistoryRow, error)
}

type RepairRepository struct {
	storage *pgxpool.Pool
}

func NewRepairRepository(storage *pgxpool.Pool) RepairRepositoryInterface {
	return &RepairRepository{storage: storage}
}

func scanRepair(row pgx.Row) (*entities.Repair, error) {
	var rep entities.Repair
	err := row.Scan(
		&rep.ID, &rep.EquipmentID, &rep.StaffID, &rep.Remark, &rep.Status,
		&rep.ApprovedAt, &rep.CompletedAt, &rep.RepairStaffID, &rep.Report,
		&rep.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *RepairRepository) CreateRepair(ctx context.Context, equipmentID, staffID uint64, remark string) (*entities.Repair, error) {
	var remarkArg *string
	if remark != "" {
		remarkArg = &remark
	}

	return scanRepair(r.storage.QueryRow(ctx, `
		INSERT INTO repairs (equipment_id, staff_id, remark, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+repairFields,
		equipmentID, staffID, remarkArg, entities.RepairPending))
}

func findRepairByID(ctx context.Context, q querier, id uint64, lock string) (*entities.Repair, error) {
	return scanRepair(q.QueryRow(ctx,
		`SELECT `+repairFields+` FROM repairs WHERE id = $1`+lock, id))
}

func (r *RepairRepository) FindRepair(ctx context.Context, id uint64) (*entities.Repair, error) {
	return findRepairByID(ctx, r.storage, id, "")
}

// FindRepairForUpdateInTx блокирует строку заявки на время транзакции.
// Замок сериализует конкурирующие complete() по одной заявке.
func (r *RepairRepository) FindRepairForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Repair, error) {
	return findRepairByID(ctx, tx, id, " FOR UPDATE")
}

func (r *RepairRepository) UpdateRepairInTx(ctx context.Context, tx pgx.Tx, repair *entities.Repair) error {
	result, err := tx.Exec(ctx, `
		UPDATE repairs
		SET status = $1, approved_at = $2, completed_at = $3,
		    repair_staff_id = $4, report = $5, remark = $6
		WHERE id = $7`,
		repair.Status, repair.ApprovedAt, repair.CompletedAt,
		repair.RepairStaffID, repair.Report, repair.Remark, repair.ID,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заявки на ремонт: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetHistoryByEquipment — все заявки по оборудованию, новые первыми.
func (r *RepairRepository) GetHistoryByEquipment(ctx context.Context, equipmentID uint64) ([]HistoryRow, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT
			rep.id, rep.equipment_id, rep.staff_id, rep.remark, rep.status,
			rep.approved_at, rep.completed_at, rep.repair_staff_id, rep.report,
			rep.created_at,
			rs.first_name, rs.last_name,
			b.name
		FROM repairs rep
		JOIN equipments e ON rep.equipment_id = e.id
		JOIN branches b ON e.branch_id = b.id
		LEFT JOIN staff rs ON rep.repair_staff_id = rs.id
		WHERE rep.equipment_id = $1
		ORDER BY rep.created_at DESC`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryRow, 0)
	for rows.Next() {
		var h HistoryRow
		var firstName, lastName *string
		if err := rows.Scan(
			&h.Repair.ID, &h.Repair.EquipmentID, &h.Repair.StaffID, &h.Repair.Remark,
			&h.Repair.Status, &h.Repair.ApprovedAt, &h.Repair.CompletedAt,
			&h.Repair.RepairStaffID, &h.Repair.Report, &h.Repair.CreatedAt,
			&firstName, &lastName, &h.BranchName,
		); err != nil {
			return nil, err
		}
		if firstName != nil && lastName != nil {
			fullName := *firstName + " " + *lastName
			h.RepairStaffName = &fullName
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

package repositories

import (
	"context"

	"repair-system/internal/entities"
	"repair-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// staffFullName — формат подписи исполнителя во всех срезах статистики.
const staffFullName = "s.first_name || ' ' || s.last_name AS group_name"

type StatsRepositoryInterface interface {
	GetMonthlyRepairs(ctx context.Context) ([]types.MonthlyBucket, error)
	GetTopRepairStaff(ctx context.Context) ([]types.CountByGroup, error)
	GetRepairsByBranch(ctx context.Context) ([]types.CountByGroup, error)
	GetTopUsedParts(ctx context.Context) ([]types.SumByGroup, error)
	GetPartBranchUsage(ctx context.Context) ([]types.PartBranchUsage, error)
	GetStaffWorkload(ctx context.Context) ([]types.CountByGroup, error)
}

type StatsRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStatsRepository(storage *pgxpool.Pool, logger *zap.Logger) StatsRepositoryInterface {
	return &StatsRepository{storage: storage, logger: logger}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// GetMonthlyRepairs — количество заявок по календарным месяцам, хронологически.
func (r *StatsRepository) GetMonthlyRepairs(ctx context.Context) ([]types.MonthlyBucket, error) {
	sqlStr, args, err := psql.Select(
		"date_trunc('month', created_at) AS month",
		"COUNT(id) AS count",
	).From("repairs").
		GroupBy("date_trunc('month', created_at)").
		OrderBy("date_trunc('month', created_at)").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.MonthlyBucket])
}

// GetTopRepairStaff — топ-5 исполнителей по завершённым ремонтам.
// При равенстве счётчиков порядок фиксируется по имени.
func (r *StatsRepository) GetTopRepairStaff(ctx context.Context) ([]types.CountByGroup, error) {
	sqlStr, args, err := psql.Select(staffFullName, "COUNT(rep.id) AS count").
		From("repairs rep").
		Join("staff s ON rep.repair_staff_id = s.id").
		Where(sq.Eq{"rep.status": entities.RepairCompleted}).
		GroupBy("s.first_name", "s.last_name").
		OrderBy("count DESC", "group_name ASC").
		Limit(5).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.CountByGroup])
}

func (r *StatsRepository) GetRepairsByBranch(ctx context.Context) ([]types.CountByGroup, error) {
	sqlStr, args, err := psql.Select("b.name AS group_name", "COUNT(rep.id) AS count").
		From("repairs rep").
		Join("equipments e ON rep.equipment_id = e.id").
		Join("branches b ON e.branch_id = b.id").
		GroupBy("b.name").
		OrderBy("count DESC", "group_name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.CountByGroup])
}

func (r *StatsRepository) GetTopUsedParts(ctx context.Context) ([]types.SumByGroup, error) {
	sqlStr, args, err := psql.Select("p.name AS group_name", "SUM(rp.quantity) AS total").
		From("repair_parts rp").
		Join("parts p ON rp.part_id = p.id").
		GroupBy("p.name").
		OrderBy("total DESC", "group_name ASC").
		Limit(5).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.SumByGroup])
}

// GetPartBranchUsage — суммарный расход по парам (запчасть, филиал).
// Порядок строк — порядок появления пары в журнале (MIN(rp.id)),
// а не объём расхода: матрица отражает историю, а не рейтинг.
func (r *StatsRepository) GetPartBranchUsage(ctx context.Context) ([]types.PartBranchUsage, error) {
	sqlStr, args, err := psql.Select(
		"p.name AS part_name",
		"b.name AS branch_name",
		"SUM(rp.quantity) AS total",
		"MIN(rp.id) AS first_row_id",
	).From("repair_parts rp").
		Join("parts p ON rp.part_id = p.id").
		Join("repairs rep ON rp.repair_id = rep.id").
		Join("equipments e ON rep.equipment_id = e.id").
		Join("branches b ON e.branch_id = b.id").
		GroupBy("p.name", "b.name").
		OrderBy("first_row_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.PartBranchUsage])
}

// GetStaffWorkload — количество назначенных заявок по исполнителям.
// under_repair оставлен в фильтре как зарезервированное значение статуса:
// сейчас заявка принимать его не может, строк он не добавляет.
func (r *StatsRepository) GetStaffWorkload(ctx context.Context) ([]types.CountByGroup, error) {
	sqlStr, args, err := psql.Select(staffFullName, "COUNT(rep.id) AS count").
		From("repairs rep").
		Join("staff s ON rep.repair_staff_id = s.id").
		Where(sq.Eq{"rep.status": []string{
			entities.RepairApproved,
			entities.RepairCompleted,
			entities.RepairPending,
			entities.EquipmentUnderRepair,
		}}).
		GroupBy("s.first_name", "s.last_name").
		OrderBy("count DESC", "group_name ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return pgx.CollectRows(rows, pgx.RowToStructByName[types.CountByGroup])
}

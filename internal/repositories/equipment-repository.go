package repositories

import (
	"context"
	"fmt"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentJoinFields = `
	e.id, e.tag_number, e.serial_number, e.item_category, e.branch_id,
	e.status, e.remark, e.added_by, e.created_at, b.id, b.name`

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentByTagNumber(ctx context.Context, tagNumber int64) (*entities.Equipment, error)
	FindEquipmentBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, addedBy uint64) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var b entities.Branch
	err := row.Scan(
		&e.ID, &e.TagNumber, &e.SerialNumber, &e.ItemCategory, &e.BranchID,
		&e.Status, &e.Remark, &e.AddedBy, &e.CreatedAt,
		&b.ID, &b.Name,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUnknownEquipment
		}
		return nil, err
	}
	e.Branch = &b
	return &e, nil
}

// GetEquipments возвращает страницу оборудования с фильтрами
// filter[item_category], filter[status], filter[branch_id] и search
// по серийному или инвентарному номеру.
func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select().
		From("equipments e").
		Join("branches b ON e.branch_id = b.id")

	if v, ok := filter.Filter["item_category"]; ok {
		base = base.Where(sq.Eq{"e.item_category": v})
	}
	if v, ok := filter.Filter["status"]; ok {
		base = base.Where(sq.Eq{"e.status": v})
	}
	if v, ok := filter.Filter["branch_id"]; ok {
		base = base.Where(sq.Eq{"e.branch_id": v})
	}
	if filter.Search != "" {
		base = base.Where(sq.Or{
			sq.ILike{"e.serial_number": "%" + filter.Search + "%"},
			sq.Expr("CAST(e.tag_number AS TEXT) LIKE ?", "%"+filter.Search+"%"),
		})
	}

	countQuery, countArgs, err := base.Columns("COUNT(e.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета оборудования: %w", err)
	}

	mainQuery, mainArgs, err := base.Columns(equipmentJoinFields).
		OrderBy("e.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса списка оборудования: %w", err)
	}

	rows, err := r.storage.Query(ctx, mainQuery, mainArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		var e entities.Equipment
		var b entities.Branch
		if err := rows.Scan(
			&e.ID, &e.TagNumber, &e.SerialNumber, &e.ItemCategory, &e.BranchID,
			&e.Status, &e.Remark, &e.AddedBy, &e.CreatedAt,
			&b.ID, &b.Name,
		); err != nil {
			return nil, 0, err
		}
		e.Branch = &b
		list = append(list, e)
	}
	return list, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return scanEquipment(r.storage.QueryRow(ctx, `
		SELECT `+equipmentJoinFields+`
		FROM equipments e
		JOIN branches b ON e.branch_id = b.id
		WHERE e.id = $1`, id))
}

func (r *EquipmentRepository) FindEquipmentByTagNumber(ctx context.Context, tagNumber int64) (*entities.Equipment, error) {
	return scanEquipment(r.storage.QueryRow(ctx, `
		SELECT `+equipmentJoinFields+`
		FROM equipments e
		JOIN branches b ON e.branch_id = b.id
		WHERE e.tag_number = $1`, tagNumber))
}

func (r *EquipmentRepository) FindEquipmentBySerialNumber(ctx context.Context, serialNumber string) (*entities.Equipment, error) {
	return scanEquipment(r.storage.QueryRow(ctx, `
		SELECT `+equipmentJoinFields+`
		FROM equipments e
		JOIN branches b ON e.branch_id = b.id
		WHERE e.serial_number = $1`, serialNumber))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, addedBy uint64) (*entities.Equipment, error) {
	status := payload.Status
	if status == "" {
		status = entities.EquipmentWorking
	}

	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipments (tag_number, serial_number, item_category, branch_id, status, remark, added_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		payload.TagNumber, payload.SerialNumber, payload.ItemCategory,
		payload.BranchID, status, payload.Remark, addedBy,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.FindEquipment(ctx, id)
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

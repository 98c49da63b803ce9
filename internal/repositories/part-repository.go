package repositories

import (
	"context"
	"errors"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partFields = "id, name, description, added_at, updated_at"

type PartRepositoryInterface interface {
	GetParts(ctx context.Context) ([]entities.Part, error)
	FindPart(ctx context.Context, id uint64) (*entities.Part, error)
	CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*entities.Part, error)
	UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error)
	DeletePart(ctx context.Context, id uint64) error
	UsageCount(ctx context.Context, id uint64) (int64, error)
	ResolvePartIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]struct{}, error)
}

type PartRepository struct {
	storage *pgxpool.Pool
}

func NewPartRepository(storage *pgxpool.Pool) PartRepositoryInterface {
	return &PartRepository{storage: storage}
}

func scanPart(row pgx.Row) (*entities.Part, error) {
	var p entities.Part
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.AddedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUnknownPart
		}
		return nil, err
	}
	return &p, nil
}

func (r *PartRepository) GetParts(ctx context.Context) ([]entities.Part, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+partFields+` FROM parts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := make([]entities.Part, 0)
	for rows.Next() {
		var p entities.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.AddedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *PartRepository) FindPart(ctx context.Context, id uint64) (*entities.Part, error) {
	return scanPart(r.storage.QueryRow(ctx,
		`SELECT `+partFields+` FROM parts WHERE id = $1`, id))
}

func (r *PartRepository) CreatePart(ctx context.Context, payload dto.CreatePartDTO) (*entities.Part, error) {
	part, err := scanPart(r.storage.QueryRow(ctx, `
		INSERT INTO parts (name, description)
		VALUES ($1, $2)
		RETURNING `+partFields,
		payload.Name, payload.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrPartNameTaken
		}
		return nil, err
	}
	return part, nil
}

func (r *PartRepository) UpdatePart(ctx context.Context, id uint64, payload dto.UpdatePartDTO) (*entities.Part, error) {
	part, err := r.FindPart(ctx, id)
	if err != nil {
		return nil, err
	}

	name := part.Name
	description := part.Description
	if payload.Name != nil {
		name = *payload.Name
	}
	if payload.Description != nil {
		description = *payload.Description
	}

	updated, err := scanPart(r.storage.QueryRow(ctx, `
		UPDATE parts
		SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING `+partFields,
		name, description, id))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrPartNameTaken
		}
		return nil, err
	}
	return updated, nil
}

func (r *PartRepository) DeletePart(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUnknownPart
	}
	return nil
}

// UsageCount — сколько строк журнала ссылается на запчасть.
// Активное использование — мягкий запрет на удаление.
func (r *PartRepository) UsageCount(ctx context.Context, id uint64) (int64, error) {
	var count int64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM repair_parts WHERE part_id = $1`, id).Scan(&count)
	return count, err
}

// ResolvePartIDsInTx возвращает множество существующих id из переданного списка.
// Выполняется внутри транзакции завершения ремонта, чтобы проверка и вставка
// видели одно состояние справочника.
func (r *PartRepository) ResolvePartIDsInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]struct{}, error) {
	found := make(map[uint64]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := tx.Query(ctx, `SELECT id FROM parts WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found[id] = struct{}{}
	}
	return found, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

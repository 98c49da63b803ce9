package repositories

import (
	"context"

	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BranchRepositoryInterface interface {
	GetBranches(ctx context.Context) ([]entities.Branch, error)
	FindBranch(ctx context.Context, id uint64) (*entities.Branch, error)
	CreateBranch(ctx context.Context, name string, createdBy uint64) (*entities.Branch, error)
}

type BranchRepository struct {
	storage *pgxpool.Pool
}

func NewBranchRepository(storage *pgxpool.Pool) BranchRepositoryInterface {
	return &BranchRepository{storage: storage}
}

func (r *BranchRepository) GetBranches(ctx context.Context) ([]entities.Branch, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT id, name, created_by, created_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	branches := make([]entities.Branch, 0)
	for rows.Next() {
		var b entities.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (r *BranchRepository) FindBranch(ctx context.Context, id uint64) (*entities.Branch, error) {
	var b entities.Branch
	err := r.storage.QueryRow(ctx,
		`SELECT id, name, created_by, created_at FROM branches WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) CreateBranch(ctx context.Context, name string, createdBy uint64) (*entities.Branch, error) {
	var b entities.Branch
	err := r.storage.QueryRow(ctx, `
		INSERT INTO branches (name, created_by)
		VALUES ($1, $2)
		RETURNING id, name, created_by, created_at`,
		name, createdBy).
		Scan(&b.ID, &b.Name, &b.CreatedBy, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

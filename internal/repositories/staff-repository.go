package repositories

import (
	"context"

	"repair-system/internal/dto"
	"repair-system/internal/entities"
	apperrors "repair-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const staffFields = "id, username, email, first_name, last_name, role, password, created_at, updated_at"

type StaffRepositoryInterface interface {
	GetStaffList(ctx context.Context) ([]entities.Staff, error)
	FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error)
	FindStaffByLogin(ctx context.Context, login string) (*entities.Staff, error)
	FindStaffByEmail(ctx context.Context, email string) (*entities.Staff, error)
	CreateStaff(ctx context.Context, payload dto.RegisterStaffDTO, hashedPassword string) (*entities.Staff, error)
	UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error
}

type StaffRepository struct {
	storage *pgxpool.Pool
}

func NewStaffRepository(storage *pgxpool.Pool) StaffRepositoryInterface {
	return &StaffRepository{storage: storage}
}

func scanStaff(row pgx.Row) (*entities.Staff, error) {
	var s entities.Staff
	err := row.Scan(
		&s.ID, &s.Username, &s.Email, &s.FirstName, &s.LastName,
		&s.Role, &s.Password, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) GetStaffList(ctx context.Context) ([]entities.Staff, error) {
	rows, err := r.storage.Query(ctx,
		`SELECT `+staffFields+` FROM staff ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entities.Staff, 0)
	for rows.Next() {
		var s entities.Staff
		if err := rows.Scan(
			&s.ID, &s.Username, &s.Email, &s.FirstName, &s.LastName,
			&s.Role, &s.Password, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *StaffRepository) FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx,
		`SELECT `+staffFields+` FROM staff WHERE id = $1`, id))
}

func (r *StaffRepository) FindStaffByLogin(ctx context.Context, login string) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx,
		`SELECT `+staffFields+` FROM staff WHERE username = $1 OR email = $1`, login))
}

func (r *StaffRepository) FindStaffByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx,
		`SELECT `+staffFields+` FROM staff WHERE email = $1`, email))
}

func (r *StaffRepository) CreateStaff(ctx context.Context, payload dto.RegisterStaffDTO, hashedPassword string) (*entities.Staff, error) {
	return scanStaff(r.storage.QueryRow(ctx, `
		INSERT INTO staff (username, email, first_name, last_name, role, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+staffFields,
		payload.Username, payload.Email, payload.FirstName, payload.LastName,
		payload.Role, hashedPassword,
	))
}

func (r *StaffRepository) UpdatePassword(ctx context.Context, id uint64, hashedPassword string) error {
	result, err := r.storage.Exec(ctx, `
		UPDATE staff SET password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		hashedPassword, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var equipmentsData = []struct {
	TagNumber    int64
	SerialNumber string
	ItemCategory string
	BranchName   string
}{
	{10001, "SN-CMP-0001", "Computer", "Головной офис"},
	{10002, "SN-CMP-0002", "Computer", "Головной офис"},
	{10003, "SN-PRN-0001", "Printer", "Филиал Север"},
	{10004, "SN-SCN-0001", "Scanner", "Филиал Юг"},
	{10005, "SN-MON-0001", "Monitor", "Филиал Восток"},
	{10006, "SN-CMP-0003", "Computer", "Филиал Запад"},
	{10007, "SN-PRN-0002", "Printer", "Филиал Юг"},
}

func seedEquipments(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'equipments'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	branchesMap, err := mapAllIDsByName(ctx, tx, "branches")
	if err != nil {
		return fmt.Errorf("ошибка получения ID филиалов: %w", err)
	}

	query := `INSERT INTO equipments (tag_number, serial_number, item_category, branch_id)
			  VALUES ($1, $2, $3, $4) ON CONFLICT (tag_number) DO NOTHING`

	for _, e := range equipmentsData {
		branchID, ok := branchesMap[e.BranchName]
		if !ok {
			log.Printf("ПРЕДУПРЕЖДЕНИЕ: Филиал '%s' не найден, пропускаем оборудование '%s'.", e.BranchName, e.SerialNumber)
			continue
		}

		if _, err := tx.Exec(ctx, query, e.TagNumber, e.SerialNumber, e.ItemCategory, branchID); err != nil {
			log.Printf("Ошибка при вставке оборудования '%s': %v", e.SerialNumber, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func mapAllIDsByName(ctx context.Context, tx pgx.Tx, table string) (map[string]uint64, error) {
	rows, err := tx.Query(ctx, fmt.Sprintf("SELECT id, name FROM %s", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resultMap := make(map[string]uint64)
	for rows.Next() {
		var id uint64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		resultMap[name] = id
	}
	return resultMap, rows.Err()
}

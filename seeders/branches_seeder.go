package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var branchesData = []string{
	"Головной офис",
	"Филиал Север",
	"Филиал Юг",
	"Филиал Восток",
	"Филиал Запад",
}

func seedBranches(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'branches'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO branches (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	for _, name := range branchesData {
		if _, err := tx.Exec(ctx, query, name); err != nil {
			log.Printf("Ошибка при вставке филиала '%s': %v", name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

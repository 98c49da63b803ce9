package seeders

import (
	"context"
	"log"
	"os"

	"repair-system/pkg/config"
	"repair-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

var staffData = []struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Role      string
}{
	{"i.rahimov", "i.rahimov@example.com", "Икром", "Рахимов", "staff"},
	{"f.karimova", "f.karimova@example.com", "Фарангис", "Каримова", "staff"},
	{"s.nazarov", "s.nazarov@example.com", "Сухроб", "Назаров", "staff"},
}

func seedStaff(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("  - Наполнение таблицы 'staff'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin12345"
		log.Println("ПРЕДУПРЕЖДЕНИЕ: SEED_ADMIN_PASSWORD не задан, используется пароль по умолчанию.")
	}

	query := `INSERT INTO staff (username, email, first_name, last_name, role, password)
			  VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (username) DO NOTHING`

	adminHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, "admin", "admin@example.com", "Админ", "Системы", "admin", adminHash); err != nil {
		return err
	}

	staffHash, err := utils.HashPassword("staff12345")
	if err != nil {
		return err
	}
	for _, s := range staffData {
		if _, err := tx.Exec(ctx, query, s.Username, s.Email, s.FirstName, s.LastName, s.Role, staffHash); err != nil {
			log.Printf("Ошибка при вставке сотрудника '%s': %v", s.Username, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

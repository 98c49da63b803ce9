package seeders

import (
	"context"
	"log"

	"repair-system/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники без зависимостей: филиалы и запчасти.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedBranches(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Филиалов (Branches): %v", err)
	}
	if err := seedParts(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Запчастей (Parts): %v", err)
	}
	log.Println("✅ Наполнение справочников завершено!")
}

// SeedStaffAndEquipment создаёт сотрудников (включая администратора)
// и демонстрационное оборудование. Зависит от справочника филиалов.
func SeedStaffAndEquipment(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания сотрудников и оборудования...")

	if err := seedStaff(ctx, db, cfg); err != nil {
		log.Fatalf("❌ Ошибка создания Сотрудников (Staff): %v", err)
	}
	if err := seedEquipments(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Оборудования (Equipments): %v", err)
	}

	log.Println("✅ Создание сотрудников и оборудования завершено!")
}

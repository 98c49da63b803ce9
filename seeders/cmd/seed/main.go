package main

import (
	"flag"
	"log"

	"repair-system/migrations"
	"repair-system/pkg/config"
	"repair-system/pkg/database/postgresql"
	"repair-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runDicts := flag.Bool("dictionaries", false, "Запустить наполнение справочников (филиалы, запчасти)")
	runStaff := flag.Bool("staff", false, "Запустить создание сотрудников и оборудования")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -dictionaries -staff)")

	flag.Parse()

	if !*runDicts && !*runStaff && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed/main.go -dictionaries")
		log.Println("  go run ./seeders/cmd/seed/main.go -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, migrations.FS); err != nil {
		log.Fatalf("❌ Ошибка применения миграций: %v", err)
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runDicts {
		seeders.SeedDictionaries(dbPool)
		log.Println("======================================================")
	}

	if *runAll || *runStaff {
		// Оборудование ссылается на филиалы, поэтому справочники должны быть наполнены первыми.
		seeders.SeedStaffAndEquipment(dbPool, cfg)
		log.Println("======================================================")
	}

	log.Println("🏁 Работа сидеров завершена.")
}

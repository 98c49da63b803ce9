package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var partsData = []struct {
	Name        string
	Description string
}{
	{"Вентилятор охлаждения", "Вентилятор 80мм для блоков питания и корпусов"},
	{"Блок питания 450Вт", "Стандартный ATX блок питания"},
	{"Модуль памяти 8ГБ", "DDR4 SO-DIMM 2666МГц"},
	{"Картридж тонера", "Совместимый тонер-картридж для лазерных принтеров"},
	{"Жёсткий диск 1ТБ", "SATA 3.5 дюйма, 7200 об/мин"},
	{"Кабель питания", "Сетевой кабель C13, 1.8м"},
	{"Матрица 24 дюйма", "Запасная IPS-панель для мониторов"},
	{"Ролик подачи бумаги", "Узел подачи для сканеров и принтеров"},
}

func seedParts(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'parts'...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO parts (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	for _, p := range partsData {
		if _, err := tx.Exec(ctx, query, p.Name, p.Description); err != nil {
			log.Printf("Ошибка при вставке запчасти '%s': %v", p.Name, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

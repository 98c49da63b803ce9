package entities

import "time"

// RepairPart — строка журнала расхода запчастей. Принадлежит ровно одной
// заявке; пара (repair_id, part_id) уникальна, quantity >= 1.
// Порядок появления строк в журнале задаётся возрастанием id.
type RepairPart struct {
	ID        uint64    `json:"id" db:"id"`
	RepairID  uint64    `json:"repair_id" db:"repair_id"`
	PartID    uint64    `json:"part_id" db:"part_id"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

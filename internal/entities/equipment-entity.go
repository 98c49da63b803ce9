package entities

import "time"

// Статусы оборудования. StatusUnderRepair также фигурирует в фильтре
// загруженности сотрудников как зарезервированное значение статуса заявки.
const (
	EquipmentWorking     = "working"
	EquipmentNeedRepair  = "need_repair"
	EquipmentUnderRepair = "under_repair"
	EquipmentRepaired    = "repaired"
	EquipmentDisposed    = "disposed"
)

const (
	CategoryComputer = "Computer"
	CategoryScanner  = "Scanner"
	CategoryPrinter  = "Printer"
	CategoryMonitor  = "Monitor"
)

type Equipment struct {
	ID           uint64    `json:"id" db:"id"`
	TagNumber    int64     `json:"tag_number" db:"tag_number"`
	SerialNumber string    `json:"serial_number" db:"serial_number"`
	ItemCategory string    `json:"item_category" db:"item_category"`
	BranchID     uint64    `json:"branch_id" db:"branch_id"`
	Status       string    `json:"status" db:"status"`
	Remark       string    `json:"remark" db:"remark"`
	AddedBy      *uint64   `json:"added_by,omitempty" db:"added_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Branch *Branch `json:"branch,omitempty" db:"-"`
}

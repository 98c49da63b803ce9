package entities

import "time"

// Статусы заявки на ремонт. pending — единственный начальный статус,
// rejected и completed — терминальные.
const (
	RepairPending   = "pending"
	RepairApproved  = "approved"
	RepairRejected  = "rejected"
	RepairCompleted = "completed"
)

type Repair struct {
	ID            uint64     `json:"id" db:"id"`
	EquipmentID   uint64     `json:"equipment_id" db:"equipment_id"`
	StaffID       uint64     `json:"staff_id" db:"staff_id"`
	Remark        *string    `json:"remark,omitempty" db:"remark"`
	Status        string     `json:"status" db:"status"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty" db:"approved_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	RepairStaffID *uint64    `json:"repair_staff_id,omitempty" db:"repair_staff_id"`
	Report        *string    `json:"report,omitempty" db:"report"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// CanDecide — решение принимается только по заявке в статусе pending.
func (r *Repair) CanDecide() bool {
	return r.Status == RepairPending
}

// CanComplete — завершить можно только одобренную заявку.
func (r *Repair) CanComplete() bool {
	return r.Status == RepairApproved
}

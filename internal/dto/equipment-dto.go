package dto

type CreateEquipmentDTO struct {
	TagNumber    int64  `json:"tag_number" validate:"required"`
	SerialNumber string `json:"serial_number" validate:"required,max=100"`
	ItemCategory string `json:"item_category" validate:"required,oneof=Computer Scanner Printer Monitor"`
	BranchID     uint64 `json:"branch_id" validate:"required"`
	Status       string `json:"status" validate:"omitempty,oneof=working need_repair under_repair repaired disposed"`
	Remark       string `json:"remark"`
}

type EquipmentDTO struct {
	ID           uint64         `json:"id"`
	TagNumber    int64          `json:"tag_number"`
	SerialNumber string         `json:"serial_number"`
	ItemCategory string         `json:"item_category"`
	Status       string         `json:"status"`
	Remark       string         `json:"remark"`
	Branch       ShortBranchDTO `json:"branch"`
	CreatedAt    string         `json:"created_at"`
}

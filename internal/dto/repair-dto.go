package dto

import "github.com/aarondl/null/v8"

type CreateRepairDTO struct {
	EquipmentID uint64 `json:"equipment" validate:"required"`
	Remark      string `json:"remark"`
}

// DecideRepairDTO — решение по заявке: approved или rejected.
// RepairStaffID принимается только вместе с approved.
type DecideRepairDTO struct {
	Status        string   `json:"status" validate:"required,repair_decision"`
	RepairStaffID null.Int `json:"repair_staff_id"`
}

type RepairPartInputDTO struct {
	PartID   uint64 `json:"part_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

type CompleteRepairDTO struct {
	Status string               `json:"status" validate:"required,eq=completed"`
	Report string               `json:"report" validate:"required"`
	Remark null.String          `json:"remark"`
	Parts  []RepairPartInputDTO `json:"parts" validate:"dive"`
}

type RepairDTO struct {
	ID            uint64  `json:"id"`
	EquipmentID   uint64  `json:"equipment_id"`
	StaffID       uint64  `json:"staff_id"`
	Status        string  `json:"status"`
	Remark        *string `json:"remark,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	CompletedAt   *string `json:"completed_at,omitempty"`
	RepairStaffID *uint64 `json:"repair_staff_id,omitempty"`
	Report        *string `json:"report,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type RepairPartUsageDTO struct {
	PartName string `json:"part_name"`
	Quantity int64  `json:"quantity"`
}

// RepairHistoryDTO — одна запись истории ремонтов оборудования:
// заявка с вложенным журналом запчастей и названием филиала.
type RepairHistoryDTO struct {
	ID              uint64               `json:"id"`
	Status          string               `json:"status"`
	CreatedAt       string               `json:"created_at"`
	CompletedAt     *string              `json:"completed_at,omitempty"`
	Report          *string              `json:"report,omitempty"`
	Remark          *string              `json:"remark,omitempty"`
	RepairStaffName *string              `json:"repair_staff_name,omitempty"`
	Parts           []RepairPartUsageDTO `json:"parts"`
	EquipmentBranch string               `json:"equipment_branch"`
}

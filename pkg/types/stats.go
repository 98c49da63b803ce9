package types

import "time"

// MonthlyBucket — сырой результат группировки заявок по календарному месяцу.
type MonthlyBucket struct {
	Month time.Time `db:"month"`
	Count int64     `db:"count"`
}

// CountByGroup — пара "имя группы / количество" для счётных срезов статистики.
type CountByGroup struct {
	GroupName string `json:"group_name" db:"group_name"`
	Count     int64  `json:"count" db:"count"`
}

// SumByGroup — пара "имя группы / сумма количеств" (расход запчастей).
type SumByGroup struct {
	GroupName string `json:"group_name" db:"group_name"`
	Total     int64  `json:"total" db:"total"`
}

// PartBranchUsage — строка матрицы расхода: запчасть, филиал, суммарное количество.
// FirstRowID хранит id самой ранней строки журнала для пары — по нему
// восстанавливается порядок появления пар в истории.
type PartBranchUsage struct {
	PartName   string `db:"part_name"`
	BranchName string `db:"branch_name"`
	Total      int64  `db:"total"`
	FirstRowID int64  `db:"first_row_id"`
}

// ChartData — подписи и значения одного графика в ответе статистики.
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// PartBranchMatrix — расход одной запчасти в разрезе филиалов.
type PartBranchMatrix struct {
	Part       string   `json:"part"`
	Branches   []string `json:"branches"`
	Quantities []int64  `json:"quantities"`
}

// RepairStats — полный шестисекционный ответ /admin/stats.
type RepairStats struct {
	MonthlyRepairs      ChartData          `json:"monthly_repairs"`
	TopRepairStaff      ChartData          `json:"top_repair_staff"`
	RepairsByBranch     ChartData          `json:"repairs_by_branch"`
	TopUsedParts        ChartData          `json:"top_used_parts"`
	BranchWisePartUsage []PartBranchMatrix `json:"branch_wise_part_usage"`
	StaffWorkload       ChartData          `json:"staff_workload"`
}

package authz

// Операции над ресурсами в формате "ресурс:действие".
const (
	RepairsRequest  = "repairs:request"
	RepairsDecide   = "repairs:decide"
	RepairsComplete = "repairs:complete"
	RepairsHistory  = "repairs:history"

	PartsView   = "parts:view"
	PartsManage = "parts:manage"

	EquipmentsView   = "equipments:view"
	EquipmentsManage = "equipments:manage"

	BranchesView   = "branches:view"
	BranchesManage = "branches:manage"

	StaffView   = "staff:view"
	StaffManage = "staff:manage"

	StatsView = "stats:view"
)

// rolePermissions — какие операции доступны роли.
// Завершение ремонта дополнительно требует совпадения с назначенным
// исполнителем — это проверяет CanDo по цели.
var rolePermissions = map[string]map[string]bool{
	"admin": {
		RepairsRequest:   true,
		RepairsDecide:    true,
		RepairsComplete:  true,
		RepairsHistory:   true,
		PartsView:        true,
		PartsManage:      true,
		EquipmentsView:   true,
		EquipmentsManage: true,
		BranchesView:     true,
		BranchesManage:   true,
		StaffView:        true,
		StaffManage:      true,
		StatsView:        true,
	},
	"staff": {
		RepairsRequest:  true,
		RepairsComplete: true,
		RepairsHistory:  true,
		PartsView:       true,
		PartsManage:     true,
		EquipmentsView:  true,
		BranchesView:    true,
		StaffView:       true,
		StatsView:       true,
	},
}

// PermissionsForRole возвращает карту прав роли. Неизвестная роль прав не имеет.
func PermissionsForRole(role string) map[string]bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return map[string]bool{}
	}
	return perms
}

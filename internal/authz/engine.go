package authz

import "repair-system/internal/entities"

// Context — входные данные проверки: кто действует и над чем.
type Context struct {
	Actor  *entities.Staff
	Target interface{}
}

func (c *Context) hasPermission(permission string) bool {
	if c.Actor == nil {
		return false
	}
	return PermissionsForRole(c.Actor.Role)[permission]
}

// canAccessRepair — объектные правила для заявок на ремонт.
func canAccessRepair(ctx Context, permission string, target *entities.Repair) bool {
	switch permission {
	case RepairsComplete:
		// Завершает только назначенный исполнитель.
		if target.RepairStaffID == nil {
			return false
		}
		return *target.RepairStaffID == ctx.Actor.ID
	default:
		return true
	}
}

// CanDo — единая точка принятия решения (actor, operation, target).
// Сначала RBAC по роли, затем объектные правила, если цель задана.
func CanDo(permission string, ctx Context) bool {
	if !ctx.hasPermission(permission) {
		return false
	}

	if ctx.Target == nil {
		return true
	}

	switch target := ctx.Target.(type) {
	case *entities.Repair:
		return canAccessRepair(ctx, permission, target)
	default:
		return true
	}
}

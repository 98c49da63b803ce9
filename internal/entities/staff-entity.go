package entities

import "repair-system/pkg/types"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Staff struct {
	ID        uint64 `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Role      string `json:"role" db:"role"`

	Password string `json:"-" db:"password"`

	types.BaseEntity
}

// FullName — "Имя Фамилия", формат подписи исполнителя в статистике и истории.
func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

func (s *Staff) IsAdmin() bool {
	return s.Role == RoleAdmin
}

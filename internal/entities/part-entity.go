package entities

import "time"

type Part struct {
	ID          uint64    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	AddedAt     time.Time `json:"added_at" db:"added_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

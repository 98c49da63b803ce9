package dto

type CreatePartDTO struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description"`
}

type UpdatePartDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description"`
}

type PartDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AddedAt     string `json:"added_at"`
	UpdatedAt   string `json:"updated_at"`
}

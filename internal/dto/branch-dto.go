package dto

type CreateBranchDTO struct {
	Name string `json:"name" validate:"required,max=256"`
}

type BranchDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type ShortBranchDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

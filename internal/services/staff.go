package services

import (
	"context"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
)

type StaffServiceInterface interface {
	GetStaffList(ctx context.Context, actor *entities.Staff) ([]dto.StaffDTO, error)
	FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error)
}

type StaffService struct {
	staffRepo repositories.StaffRepositoryInterface
}

func NewStaffService(staffRepo repositories.StaffRepositoryInterface) StaffServiceInterface {
	return &StaffService{staffRepo: staffRepo}
}

func (s *StaffService) GetStaffList(ctx context.Context, actor *entities.Staff) ([]dto.StaffDTO, error) {
	if !authz.CanDo(authz.StaffView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	list, err := s.staffRepo.GetStaffList(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.StaffDTO, 0, len(list))
	for _, staff := range list {
		result = append(result, dto.StaffDTO{
			ID:        staff.ID,
			Username:  staff.Username,
			Email:     staff.Email,
			FirstName: staff.FirstName,
			LastName:  staff.LastName,
			Role:      staff.Role,
		})
	}
	return result, nil
}

// FindStaffByID используется промежуточным слоем для загрузки
// действующего сотрудника по StaffID из токена.
func (s *StaffService) FindStaffByID(ctx context.Context, id uint64) (*entities.Staff, error) {
	return s.staffRepo.FindStaffByID(ctx, id)
}

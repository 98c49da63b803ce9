package services

import (
	"context"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/types"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, actor *entities.Staff, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, actor *entities.Staff, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, actor *entities.Staff, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, actor *entities.Staff, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	branchRepo    repositories.BranchRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	branchRepo repositories.BranchRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		branchRepo:    branchRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, actor *entities.Staff, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	if !authz.CanDo(authz.EquipmentsView, authz.Context{Actor: actor}) {
		return nil, 0, apperrors.ErrForbidden
	}

	equipments, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(equipments))
	for i := range equipments {
		result = append(result, *toEquipmentDTO(&equipments[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, actor *entities.Staff, id uint64) (*dto.EquipmentDTO, error) {
	if !authz.CanDo(authz.EquipmentsView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEquipmentDTO(equipment), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, actor *entities.Staff, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if !authz.CanDo(authz.EquipmentsManage, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	if _, err := s.branchRepo.FindBranch(ctx, payload.BranchID); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.CreateEquipment(ctx, payload, actor.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Оборудование добавлено",
		zap.Uint64("equipmentId", equipment.ID),
		zap.Int64("tagNumber", equipment.TagNumber),
	)
	return toEquipmentDTO(equipment), nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, actor *entities.Staff, id uint64) error {
	if !authz.CanDo(authz.EquipmentsManage, authz.Context{Actor: actor}) {
		return apperrors.ErrForbidden
	}

	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Оборудование удалено", zap.Uint64("equipmentId", id))
	return nil
}

func toEquipmentDTO(equipment *entities.Equipment) *dto.EquipmentDTO {
	result := &dto.EquipmentDTO{
		ID:           equipment.ID,
		TagNumber:    equipment.TagNumber,
		SerialNumber: equipment.SerialNumber,
		ItemCategory: equipment.ItemCategory,
		Status:       equipment.Status,
		Remark:       equipment.Remark,
		CreatedAt:    equipment.CreatedAt.Format(timeFormat),
	}
	if equipment.Branch != nil {
		result.Branch = dto.ShortBranchDTO{ID: equipment.Branch.ID, Name: equipment.Branch.Name}
	}
	return result
}

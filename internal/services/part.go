package services

import (
	"context"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"

	"go.uber.org/zap"
)

type PartServiceInterface interface {
	GetParts(ctx context.Context, actor *entities.Staff) ([]dto.PartDTO, error)
	FindPart(ctx context.Context, actor *entities.Staff, id uint64) (*dto.PartDTO, error)
	CreatePart(ctx context.Context, actor *entities.Staff, payload dto.CreatePartDTO) (*dto.PartDTO, error)
	UpdatePart(ctx context.Context, actor *entities.Staff, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error)
	DeletePart(ctx context.Context, actor *entities.Staff, id uint64) error
}

type PartService struct {
	partRepo repositories.PartRepositoryInterface
	logger   *zap.Logger
}

func NewPartService(partRepo repositories.PartRepositoryInterface, logger *zap.Logger) PartServiceInterface {
	return &PartService{partRepo: partRepo, logger: logger}
}

func (s *PartService) GetParts(ctx context.Context, actor *entities.Staff) ([]dto.PartDTO, error) {
	if !authz.CanDo(authz.PartsView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	parts, err := s.partRepo.GetParts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PartDTO, 0, len(parts))
	for i := range parts {
		result = append(result, *toPartDTO(&parts[i]))
	}
	return result, nil
}

func (s *PartService) FindPart(ctx context.Context, actor *entities.Staff, id uint64) (*dto.PartDTO, error) {
	if !authz.CanDo(authz.PartsView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	part, err := s.partRepo.FindPart(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPartDTO(part), nil
}

func (s *PartService) CreatePart(ctx context.Context, actor *entities.Staff, payload dto.CreatePartDTO) (*dto.PartDTO, error) {
	if !authz.CanDo(authz.PartsManage, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	part, err := s.partRepo.CreatePart(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Добавлена запчасть", zap.Uint64("partId", part.ID), zap.String("name", part.Name))
	return toPartDTO(part), nil
}

func (s *PartService) UpdatePart(ctx context.Context, actor *entities.Staff, id uint64, payload dto.UpdatePartDTO) (*dto.PartDTO, error) {
	if !authz.CanDo(authz.PartsManage, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	part, err := s.partRepo.UpdatePart(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	return toPartDTO(part), nil
}

// DeletePart отказывает, если запчасть встречается хотя бы в одном
// журнале ремонта: история расхода не должна терять ссылок.
func (s *PartService) DeletePart(ctx context.Context, actor *entities.Staff, id uint64) error {
	if !authz.CanDo(authz.PartsManage, authz.Context{Actor: actor}) {
		return apperrors.ErrForbidden
	}

	usage, err := s.partRepo.UsageCount(ctx, id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return apperrors.ErrPartInUse
	}

	if err = s.partRepo.DeletePart(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Запчасть удалена", zap.Uint64("partId", id))
	return nil
}

func toPartDTO(part *entities.Part) *dto.PartDTO {
	return &dto.PartDTO{
		ID:          part.ID,
		Name:        part.Name,
		Description: part.Description,
		AddedAt:     part.AddedAt.Format(timeFormat),
		UpdatedAt:   part.UpdatedAt.Format(timeFormat),
	}
}

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

type BranchServiceInterface interface {
	GetBranches(ctx context.Context, actor *entities.Staff) ([]dto.BranchDTO, error)
	CreateBranch(ctx context.Context, actor *entities.Staff, payload dto.CreateBranchDTO) (*dto.BranchDTO, error)
}

type BranchService struct {
	branchRepo repositories.BranchRepositoryInterface
	logger     *zap.Logger
}

func NewBranchService(branchRepo repositories.BranchRepositoryInterface, logger *zap.Logger) BranchServiceInterface {
	return &BranchService{branchRepo: branchRepo, logger: logger}
}

func (s *BranchService) GetBranches(ctx context.Context, actor *entities.Staff) ([]dto.BranchDTO, error) {
	if !authz.CanDo(authz.BranchesView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	branches, err := s.branchRepo.GetBranches(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.BranchDTO, 0, len(branches))
	for _, branch := range branches {
		result = append(result, dto.BranchDTO{
			ID:        branch.ID,
			Name:      branch.Name,
			CreatedAt: branch.CreatedAt.Format(timeFormat),
		})
	}
	return result, nil
}

func (s *BranchService) CreateBranch(ctx context.Context, actor *entities.Staff, payload dto.CreateBranchDTO) (*dto.BranchDTO, error) {
	if !authz.CanDo(authz.BranchesManage, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	branch, err := s.branchRepo.CreateBranch(ctx, payload.Name, actor.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Филиал создан", zap.Uint64("branchId", branch.ID), zap.String("name", branch.Name))
	return &dto.BranchDTO{
		ID:        branch.ID,
		Name:      branch.Name,
		CreatedAt: branch.CreatedAt.Format(timeFormat),
	}, nil
}

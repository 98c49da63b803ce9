package services

import (
	"context"
	"errors"
	"time"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const timeFormat = "2006-01-02 15:04:05"

type RepairServiceInterface interface {
	CreateRepair(ctx context.Context, actor *entities.Staff, payload dto.CreateRepairDTO) (*dto.RepairDTO, error)
	Decide(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.DecideRepairDTO) (*dto.RepairDTO, error)
	Complete(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.CompleteRepairDTO) (*dto.RepairDTO, error)
	GetHistory(ctx context.Context, actor *entities.Staff, tagNumber *int64, serialNumber *string) ([]dto.RepairHistoryDTO, error)
}

// RepairService владеет конечным автоматом заявки:
// pending -> {approved, rejected}, approved -> completed.
// rejected и completed — терминальные состояния.
type RepairService struct {
	txManager      repositories.TxManagerInterface
	repairRepo     repositories.RepairRepositoryInterface
	repairPartRepo repositories.RepairPartRepositoryInterface
	partRepo       repositories.PartRepositoryInterface
	staffRepo      repositories.StaffRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	logger         *zap.Logger
}

func NewRepairService(
	txManager repositories.TxManagerInterface,
	repairRepo repositories.RepairRepositoryInterface,
	repairPartRepo repositories.RepairPartRepositoryInterface,
	partRepo repositories.PartRepositoryInterface,
	staffRepo repositories.StaffRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) RepairServiceInterface {
	return &RepairService{
		txManager:      txManager,
		repairRepo:     repairRepo,
		repairPartRepo: repairPartRepo,
		partRepo:       partRepo,
		staffRepo:      staffRepo,
		equipmentRepo:  equipmentRepo,
		logger:         logger,
	}
}

func (s *RepairService) CreateRepair(ctx context.Context, actor *entities.Staff, payload dto.CreateRepairDTO) (*dto.RepairDTO, error) {
	if !authz.CanDo(authz.RepairsRequest, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	// Повторная открытая заявка на то же оборудование не блокируется:
	// дубликаты разрешены, решение остаётся за одобряющим.
	if _, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID); err != nil {
		if errors.Is(err, apperrors.ErrUnknownEquipment) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnknownEquipment
		}
		return nil, err
	}

	repair, err := s.repairRepo.CreateRepair(ctx, payload.EquipmentID, actor.ID, payload.Remark)
	if err != nil {
		s.logger.Error("Ошибка при создании заявки на ремонт", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Заявка на ремонт создана",
		zap.Uint64("repairId", repair.ID),
		zap.Uint64("equipmentId", repair.EquipmentID),
		zap.Uint64("staffId", actor.ID),
	)
	return toRepairDTO(repair), nil
}

// Decide — решение по заявке в статусе pending. Одобрение ставит
// approved_at и, если передан, исполнителя; отказ терминален и
// исполнителя не принимает. Ссылка на исполнителя проверяется до
// какой-либо записи в заявку.
func (s *RepairService) Decide(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.DecideRepairDTO) (*dto.RepairDTO, error) {
	if !authz.CanDo(authz.RepairsDecide, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	if payload.Status == entities.RepairRejected && payload.RepairStaffID.Valid {
		return nil, apperrors.NewInvalidInputError("исполнитель не назначается при отклонении заявки")
	}

	var repair *entities.Repair
	err := s.txManager.Do(ctx, func(tx pgx.Tx) error {
		var txErr error
		repair, txErr = s.repairRepo.FindRepairForUpdateInTx(ctx, tx, repairID)
		if txErr != nil {
			return txErr
		}

		if !repair.CanDecide() {
			return apperrors.ErrInvalidTransition
		}

		if payload.Status == entities.RepairApproved {
			if payload.RepairStaffID.Valid {
				assigneeID := uint64(payload.RepairStaffID.Int)
				if _, txErr = s.staffRepo.FindStaffByID(ctx, assigneeID); txErr != nil {
					if errors.Is(txErr, apperrors.ErrNotFound) {
						return apperrors.ErrUnknownStaff
					}
					return txErr
				}
				repair.RepairStaffID = &assigneeID
			}
			now := time.Now()
			repair.ApprovedAt = &now
		}
		repair.Status = payload.Status

		return s.repairRepo.UpdateRepairInTx(ctx, tx, repair)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Решение по заявке на ремонт принято",
		zap.Uint64("repairId", repairID),
		zap.String("status", payload.Status),
		zap.Uint64("approverId", actor.ID),
	)
	return toRepairDTO(repair), nil
}

// Complete переводит одобренную заявку в completed и целиком заменяет
// журнал запчастей. Замена и смена статуса происходят в одной транзакции
// под блокировкой строки заявки: при любой ошибке журнал остаётся прежним.
func (s *RepairService) Complete(ctx context.Context, actor *entities.Staff, repairID uint64, payload dto.CompleteRepairDTO) (*dto.RepairDTO, error) {
	if !authz.CanDo(authz.RepairsComplete, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	partIDs := make([]uint64, 0, len(payload.Parts))
	seen := make(map[uint64]struct{}, len(payload.Parts))
	for _, entry := range payload.Parts {
		if entry.Quantity < 1 {
			return nil, apperrors.NewInvalidInputError("количество запчасти должно быть не меньше 1")
		}
		if _, dup := seen[entry.PartID]; dup {
			return nil, apperrors.ErrDuplicatePartInUsage
		}
		seen[entry.PartID] = struct{}{}
		partIDs = append(partIDs, entry.PartID)
	}

	var repair *entities.Repair
	err := s.txManager.Do(ctx, func(tx pgx.Tx) error {
		var txErr error
		repair, txErr = s.repairRepo.FindRepairForUpdateInTx(ctx, tx, repairID)
		if txErr != nil {
			return txErr
		}

		if !repair.CanComplete() {
			return apperrors.ErrInvalidTransition
		}
		if !authz.CanDo(authz.RepairsComplete, authz.Context{Actor: actor, Target: repair}) {
			return apperrors.ErrNotAssignedRepairer
		}

		found, txErr := s.partRepo.ResolvePartIDsInTx(ctx, tx, partIDs)
		if txErr != nil {
			return txErr
		}
		for _, id := range partIDs {
			if _, ok := found[id]; !ok {
				return apperrors.ErrUnknownPart
			}
		}

		if txErr = s.repairPartRepo.ReplaceForRepairInTx(ctx, tx, repairID, payload.Parts); txErr != nil {
			return txErr
		}

		now := time.Now()
		repair.Status = entities.RepairCompleted
		repair.CompletedAt = &now
		repair.Report = &payload.Report
		if payload.Remark.Valid {
			remark := payload.Remark.String
			repair.Remark = &remark
		}

		return s.repairRepo.UpdateRepairInTx(ctx, tx, repair)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ремонт завершён",
		zap.Uint64("repairId", repairID),
		zap.Uint64("repairStaffId", actor.ID),
		zap.Int("partsUsed", len(payload.Parts)),
	)
	return toRepairDTO(repair), nil
}

// GetHistory — история ремонтов оборудования, найденного по инвентарному
// или серийному номеру. Без ключа поиска возвращается пустой список.
func (s *RepairService) GetHistory(ctx context.Context, actor *entities.Staff, tagNumber *int64, serialNumber *string) ([]dto.RepairHistoryDTO, error) {
	if !authz.CanDo(authz.RepairsHistory, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	var equipment *entities.Equipment
	var err error
	switch {
	case tagNumber != nil:
		equipment, err = s.equipmentRepo.FindEquipmentByTagNumber(ctx, *tagNumber)
	case serialNumber != nil:
		equipment, err = s.equipmentRepo.FindEquipmentBySerialNumber(ctx, *serialNumber)
	default:
		return []dto.RepairHistoryDTO{}, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.repairRepo.GetHistoryByEquipment(ctx, equipment.ID)
	if err != nil {
		return nil, err
	}

	repairIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		repairIDs = append(repairIDs, row.Repair.ID)
	}
	usage, err := s.repairPartRepo.UsageForRepairs(ctx, repairIDs)
	if err != nil {
		return nil, err
	}

	history := make([]dto.RepairHistoryDTO, 0, len(rows))
	for _, row := range rows {
		item := dto.RepairHistoryDTO{
			ID:              row.Repair.ID,
			Status:          row.Repair.Status,
			CreatedAt:       row.Repair.CreatedAt.Format(timeFormat),
			Report:          row.Repair.Report,
			Remark:          row.Repair.Remark,
			RepairStaffName: row.RepairStaffName,
			EquipmentBranch: row.BranchName,
			Parts:           []dto.RepairPartUsageDTO{},
		}
		if row.Repair.CompletedAt != nil {
			completedAt := row.Repair.CompletedAt.Format(timeFormat)
			item.CompletedAt = &completedAt
		}
		if list, ok := usage[row.Repair.ID]; ok {
			item.Parts = list
		}
		history = append(history, item)
	}
	return history, nil
}

func toRepairDTO(repair *entities.Repair) *dto.RepairDTO {
	result := &dto.RepairDTO{
		ID:            repair.ID,
		EquipmentID:   repair.EquipmentID,
		StaffID:       repair.StaffID,
		Status:        repair.Status,
		Remark:        repair.Remark,
		RepairStaffID: repair.RepairStaffID,
		Report:        repair.Report,
		CreatedAt:     repair.CreatedAt.Format(timeFormat),
	}
	if repair.ApprovedAt != nil {
		approvedAt := repair.ApprovedAt.Format(timeFormat)
		result.ApprovedAt = &approvedAt
	}
	if repair.CompletedAt != nil {
		completedAt := repair.CompletedAt.Format(timeFormat)
		result.CompletedAt = &completedAt
	}
	return result
}

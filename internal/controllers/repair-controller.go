package controllers

import (
	"net/http"
	"strconv"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RepairController struct {
	repairService services.RepairServiceInterface
	staffService  services.StaffServiceInterface
	logger        *zap.Logger
}

func NewRepairController(
	repairService services.RepairServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *RepairController {
	return &RepairController{
		repairService: repairService,
		staffService:  staffService,
		logger:        logger,
	}
}

func (ctrl *RepairController) CreateRepair(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateRepairDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	repair, err := ctrl.repairService.CreateRepair(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, repair, "Заявка на ремонт создана", http.StatusCreated)
}

func (ctrl *RepairController) DecideRepair(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	repairID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.DecideRepairDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	repair, err := ctrl.repairService.Decide(c.Request().Context(), actor, repairID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, repair, "Решение по заявке принято", http.StatusOK)
}

func (ctrl *RepairController) CompleteRepair(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	repairID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.CompleteRepairDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	repair, err := ctrl.repairService.Complete(c.Request().Context(), actor, repairID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, repair, "Ремонт завершён", http.StatusOK)
}

// GetHistory отдаёт историю ремонтов по ?tag_number= или ?serial_number=.
// Без параметров поиска возвращается пустой список.
func (ctrl *RepairController) GetHistory(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var tagNumber *int64
	if raw := c.QueryParam("tag_number"); raw != "" {
		parsed, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
		}
		tagNumber = &parsed
	}

	var serialNumber *string
	if raw := c.QueryParam("serial_number"); raw != "" {
		serialNumber = &raw
	}

	history, err := ctrl.repairService.GetHistory(c.Request().Context(), actor, tagNumber, serialNumber)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, history, "История ремонтов получена", http.StatusOK)
}

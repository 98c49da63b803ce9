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

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	staffService     services.StaffServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		staffService:     staffService,
		logger:           logger,
	}
}

// GetEquipments поддерживает filter[item_category], filter[status],
// filter[branch_id] и search по инвентарному/серийному номеру.
func (ctrl *EquipmentController) GetEquipments(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())
	equipments, total, err := ctrl.equipmentService.GetEquipments(c.Request().Context(), actor, filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipments, "Список оборудования получен", http.StatusOK, total)
}

func (ctrl *EquipmentController) FindEquipment(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	equipment, err := ctrl.equipmentService.FindEquipment(c.Request().Context(), actor, equipmentID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipment, "Оборудование найдено", http.StatusOK)
}

func (ctrl *EquipmentController) CreateEquipment(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateEquipmentDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipment, err := ctrl.equipmentService.CreateEquipment(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipment, "Оборудование добавлено", http.StatusCreated)
}

func (ctrl *EquipmentController) DeleteEquipment(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	if err = ctrl.equipmentService.DeleteEquipment(c.Request().Context(), actor, equipmentID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Оборудование удалено", http.StatusOK)
}

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

type PartController struct {
	partService  services.PartServiceInterface
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewPartController(
	partService services.PartServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *PartController {
	return &PartController{
		partService:  partService,
		staffService: staffService,
		logger:       logger,
	}
}

func (ctrl *PartController) GetParts(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	parts, err := ctrl.partService.GetParts(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, parts, "Список запчастей получен", http.StatusOK)
}

func (ctrl *PartController) FindPart(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	partID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	part, err := ctrl.partService.FindPart(c.Request().Context(), actor, partID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, part, "Запчасть найдена", http.StatusOK)
}

func (ctrl *PartController) CreatePart(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreatePartDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	part, err := ctrl.partService.CreatePart(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, part, "Запчасть добавлена", http.StatusCreated)
}

func (ctrl *PartController) UpdatePart(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	partID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	var payload dto.UpdatePartDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	part, err := ctrl.partService.UpdatePart(c.Request().Context(), actor, partID, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, part, "Запчасть обновлена", http.StatusOK)
}

func (ctrl *PartController) DeletePart(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	partID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}

	if err = ctrl.partService.DeletePart(c.Request().Context(), actor, partID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Запчасть удалена", http.StatusOK)
}

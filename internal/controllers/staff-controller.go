package controllers

import (
	"net/http"

	"repair-system/internal/services"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StaffController struct {
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewStaffController(staffService services.StaffServiceInterface, logger *zap.Logger) *StaffController {
	return &StaffController{staffService: staffService, logger: logger}
}

func (ctrl *StaffController) GetStaffList(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	list, err := ctrl.staffService.GetStaffList(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, list, "Список сотрудников получен", http.StatusOK)
}

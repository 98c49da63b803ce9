package controllers

import (
	"net/http"

	"repair-system/internal/dto"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BranchController struct {
	branchService services.BranchServiceInterface
	staffService  services.StaffServiceInterface
	logger        *zap.Logger
}

func NewBranchController(
	branchService services.BranchServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *BranchController {
	return &BranchController{
		branchService: branchService,
		staffService:  staffService,
		logger:        logger,
	}
}

func (ctrl *BranchController) GetBranches(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	branches, err := ctrl.branchService.GetBranches(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, branches, "Список филиалов получен", http.StatusOK)
}

func (ctrl *BranchController) CreateBranch(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreateBranchDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	branch, err := ctrl.branchService.CreateBranch(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, branch, "Филиал создан", http.StatusCreated)
}

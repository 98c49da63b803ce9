package controllers

import (
	"net/http"

	"repair-system/internal/authz"
	"repair-system/internal/dto"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService  services.AuthServiceInterface
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		staffService: staffService,
		logger:       logger,
	}
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Вход выполнен", http.StatusOK)
}

func (ctrl *AuthController) RefreshTokens(c echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	tokens, err := ctrl.authService.RefreshTokens(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, tokens, "Токены обновлены", http.StatusOK)
}

// Register создаёт учётную запись сотрудника. Доступно только администратору.
func (ctrl *AuthController) Register(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if !authz.CanDo(authz.StaffManage, authz.Context{Actor: actor}) {
		return utils.ErrorResponse(c, apperrors.ErrForbidden, ctrl.logger)
	}

	var payload dto.RegisterStaffDTO
	if err = c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err = c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	staff, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result := dto.StaffDTO{
		ID:        staff.ID,
		Username:  staff.Username,
		Email:     staff.Email,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		Role:      staff.Role,
	}
	return utils.SuccessResponse(c, result, "Сотрудник зарегистрирован", http.StatusCreated)
}

// Me возвращает профиль текущего сотрудника по токену.
func (ctrl *AuthController) Me(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result := dto.StaffDTO{
		ID:        actor.ID,
		Username:  actor.Username,
		Email:     actor.Email,
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		Role:      actor.Role,
	}
	return utils.SuccessResponse(c, result, "Профиль получен", http.StatusOK)
}

func (ctrl *AuthController) RequestPasswordReset(c echo.Context) error {
	var payload dto.ResetPasswordRequestDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.RequestPasswordReset(c.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Если учётная запись существует, код отправлен", http.StatusOK)
}

func (ctrl *AuthController) VerifyResetCode(c echo.Context) error {
	var payload dto.VerifyCodeDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	result, err := ctrl.authService.VerifyResetCode(c.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, result, "Код подтверждён", http.StatusOK)
}

func (ctrl *AuthController) ResetPassword(c echo.Context) error {
	var payload dto.ResetPasswordDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrBadRequest, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.authService.ResetPassword(c.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Пароль обновлён", http.StatusOK)
}

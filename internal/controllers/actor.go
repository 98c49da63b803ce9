package controllers

import (
	"errors"

	"repair-system/internal/entities"
	"repair-system/internal/services"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
)

// currentStaff загружает действующего сотрудника по StaffID из токена.
// Токен валиден, но сотрудник мог быть удалён — тогда запрос неавторизован.
func currentStaff(c echo.Context, staffService services.StaffServiceInterface) (*entities.Staff, error) {
	staffID, err := utils.GetStaffIDFromCtx(c.Request().Context())
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	staff, err := staffService.FindStaffByID(c.Request().Context(), staffID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	return staff, nil
}

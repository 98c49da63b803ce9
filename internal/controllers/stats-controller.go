package controllers

import (
	"net/http"

	"repair-system/internal/services"
	"repair-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StatsController struct {
	statsService services.StatsServiceInterface
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewStatsController(
	statsService services.StatsServiceInterface,
	staffService services.StaffServiceInterface,
	logger *zap.Logger,
) *StatsController {
	return &StatsController{
		statsService: statsService,
		staffService: staffService,
		logger:       logger,
	}
}

// GetRepairStats отдаёт шесть секций статистики. С ?format=xlsx вместо
// JSON выгружается книга Excel.
func (ctrl *StatsController) GetRepairStats(c echo.Context) error {
	actor, err := currentStaff(c, ctrl.staffService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if c.QueryParam("format") == "xlsx" {
		file, exportErr := ctrl.statsService.ExportRepairStatsXLSX(c.Request().Context(), actor)
		if exportErr != nil {
			return utils.ErrorResponse(c, exportErr, ctrl.logger)
		}

		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="repair_stats.xlsx"`)
		c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().WriteHeader(http.StatusOK)
		if _, writeErr := file.WriteTo(c.Response()); writeErr != nil {
			ctrl.logger.Error("Ошибка при выгрузке статистики в Excel", zap.Error(writeErr))
			return writeErr
		}
		return nil
	}

	stats, err := ctrl.statsService.GetRepairStats(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, stats, "Статистика по ремонтам получена", http.StatusOK)
}

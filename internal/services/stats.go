package services

import (
	"context"

	"repair-system/internal/authz"
	"repair-system/internal/entities"
	"repair-system/internal/repositories"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/types"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const monthLabelFormat = "Jan 2006"

// branchWisePartLimit ограничивает матрицу "запчасть/филиал" пятью
// самыми ранними по журналу запчастями.
const branchWisePartLimit = 5

type StatsServiceInterface interface {
	GetRepairStats(ctx context.Context, actor *entities.Staff) (*types.RepairStats, error)
	ExportRepairStatsXLSX(ctx context.Context, actor *entities.Staff) (*excelize.File, error)
}

type StatsService struct {
	statsRepo repositories.StatsRepositoryInterface
	logger    *zap.Logger
}

func NewStatsService(statsRepo repositories.StatsRepositoryInterface, logger *zap.Logger) StatsServiceInterface {
	return &StatsService{statsRepo: statsRepo, logger: logger}
}

// GetRepairStats собирает шесть секций отчёта. Сырые агрегаты приходят
// из репозитория, подписи месяцев и матрица по филиалам формируются здесь.
func (s *StatsService) GetRepairStats(ctx context.Context, actor *entities.Staff) (*types.RepairStats, error) {
	if !authz.CanDo(authz.StatsView, authz.Context{Actor: actor}) {
		return nil, apperrors.ErrForbidden
	}

	monthly, err := s.statsRepo.GetMonthlyRepairs(ctx)
	if err != nil {
		s.logger.Error("Ошибка при подсчёте заявок по месяцам", zap.Error(err))
		return nil, err
	}
	topStaff, err := s.statsRepo.GetTopRepairStaff(ctx)
	if err != nil {
		return nil, err
	}
	byBranch, err := s.statsRepo.GetRepairsByBranch(ctx)
	if err != nil {
		return nil, err
	}
	topParts, err := s.statsRepo.GetTopUsedParts(ctx)
	if err != nil {
		return nil, err
	}
	partBranch, err := s.statsRepo.GetPartBranchUsage(ctx)
	if err != nil {
		return nil, err
	}
	workload, err := s.statsRepo.GetStaffWorkload(ctx)
	if err != nil {
		return nil, err
	}

	return &types.RepairStats{
		MonthlyRepairs:      MonthlyChart(monthly),
		TopRepairStaff:      countChart(topStaff),
		RepairsByBranch:     countChart(byBranch),
		TopUsedParts:        sumChart(topParts),
		BranchWisePartUsage: BranchWiseMatrix(partBranch, branchWisePartLimit),
		StaffWorkload:       countChart(workload),
	}, nil
}

// ExportRepairStatsXLSX выгружает те же шесть секций в книгу Excel:
// по листу на секцию, матрица по филиалам — отдельной таблицей.
func (s *StatsService) ExportRepairStatsXLSX(ctx context.Context, actor *entities.Staff) (*excelize.File, error) {
	stats, err := s.GetRepairStats(ctx, actor)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheets := []struct {
		name  string
		chart types.ChartData
	}{
		{"Repairs by month", stats.MonthlyRepairs},
		{"Top repair staff", stats.TopRepairStaff},
		{"Repairs by branch", stats.RepairsByBranch},
		{"Top used parts", stats.TopUsedParts},
		{"Staff workload", stats.StaffWorkload},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err = file.SetSheetName(file.GetSheetName(0), sheet.name); err != nil {
				return nil, err
			}
		} else if _, err = file.NewSheet(sheet.name); err != nil {
			return nil, err
		}
		if err = file.SetSheetRow(sheet.name, "A1", &[]interface{}{"Название", "Количество"}); err != nil {
			return nil, err
		}
		for rowIdx, label := range sheet.chart.Labels {
			cell, cellErr := excelize.CoordinatesToCellName(1, rowIdx+2)
			if cellErr != nil {
				return nil, cellErr
			}
			if err = file.SetSheetRow(sheet.name, cell, &[]interface{}{label, sheet.chart.Values[rowIdx]}); err != nil {
				return nil, err
			}
		}
	}

	const matrixSheet = "Parts by branch"
	if _, err = file.NewSheet(matrixSheet); err != nil {
		return nil, err
	}
	if err = file.SetSheetRow(matrixSheet, "A1", &[]interface{}{"Запчасть", "Филиал", "Количество"}); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, part := range stats.BranchWisePartUsage {
		for i, branch := range part.Branches {
			cell, cellErr := excelize.CoordinatesToCellName(1, rowIdx)
			if cellErr != nil {
				return nil, cellErr
			}
			if err = file.SetSheetRow(matrixSheet, cell, &[]interface{}{part.Part, branch, part.Quantities[i]}); err != nil {
				return nil, err
			}
			rowIdx++
		}
	}

	return file, nil
}

// MonthlyChart превращает месячные корзины в график с подписями
// вида "Jan 2006". Порядок корзин сохраняется.
func MonthlyChart(buckets []types.MonthlyBucket) types.ChartData {
	chart := types.ChartData{Labels: []string{}, Values: []int64{}}
	for _, bucket := range buckets {
		chart.Labels = append(chart.Labels, bucket.Month.Format(monthLabelFormat))
		chart.Values = append(chart.Values, bucket.Count)
	}
	return chart
}

func countChart(rows []types.CountByGroup) types.ChartData {
	chart := types.ChartData{Labels: []string{}, Values: []int64{}}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.GroupName)
		chart.Values = append(chart.Values, row.Count)
	}
	return chart
}

func sumChart(rows []types.SumByGroup) types.ChartData {
	chart := types.ChartData{Labels: []string{}, Values: []int64{}}
	for _, row := range rows {
		chart.Labels = append(chart.Labels, row.GroupName)
		chart.Values = append(chart.Values, row.Total)
	}
	return chart
}

// BranchWiseMatrix группирует строки расхода по запчасти в порядке
// появления пар в журнале (строки приходят отсортированными по
// first_row_id) и оставляет не более limit запчастей. Список филиалов
// каждой запчасти тоже следует порядку появления.
func BranchWiseMatrix(rows []types.PartBranchUsage, limit int) []types.PartBranchMatrix {
	matrix := []types.PartBranchMatrix{}
	index := make(map[string]int)
	for _, row := range rows {
		pos, ok := index[row.PartName]
		if !ok {
			if len(matrix) >= limit {
				continue
			}
			pos = len(matrix)
			index[row.PartName] = pos
			matrix = append(matrix, types.PartBranchMatrix{
				Part:       row.PartName,
				Branches:   []string{},
				Quantities: []int64{},
			})
		}
		matrix[pos].Branches = append(matrix[pos].Branches, row.BranchName)
		matrix[pos].Quantities = append(matrix[pos].Quantities, row.Total)
	}
	return matrix
}

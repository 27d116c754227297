package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Coaches"

var exportHeaders = []string{"ID", "Name", "Email", "Category", "Rating", "Status", "Created At"}

// ExportXLSX builds an xlsx workbook containing the current collection, one
// row per coach, in insertion order.
func (s *coachService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	coaches, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coaches for export: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, coach := range coaches {
		values := []interface{}{
			coach.ID,
			coach.Name,
			coach.Email,
			coach.Category,
			coach.Rating,
			string(coach.Status),
			coach.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	s.logger.InfoContext(ctx, "Exported coaches to workbook", "count", len(coaches))

	return f, nil
}

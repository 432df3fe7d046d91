package reporting

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/dealerbridge/forecast-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

var planExportHeader = []string{
	"Product", "Order Date", "Delivery Date", "Quantity", "EOQ",
	"Current Stock", "Projected Stock", "Est. Cost", "Priority", "Status", "Reasoning",
}

// PlanCSV renders a suggested order plan as CSV.
func PlanCSV(items []domain.SuggestedOrderItem) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(planExportHeader); err != nil {
		return nil, err
	}

	for _, item := range items {
		record := []string{
			item.ProductName,
			item.SuggestedOrderDate.Format("2006-01-02"),
			item.ExpectedDeliveryDate.Format("2006-01-02"),
			fmt.Sprintf("%d", item.SuggestedQuantity),
			fmt.Sprintf("%d", item.EconomicOrderQty),
			fmt.Sprintf("%d", item.CurrentStock),
			fmt.Sprintf("%d", item.ProjectedStock),
			fmt.Sprintf("%.2f", item.EstimatedCost),
			string(item.Priority),
			string(item.Status),
			item.Reasoning.Summary,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// PlanXLSX renders a suggested order plan as an XLSX workbook.
func PlanXLSX(items []domain.SuggestedOrderItem) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Order Plan"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, title := range planExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for row, item := range items {
		values := []interface{}{
			item.ProductName,
			item.SuggestedOrderDate.Format("2006-01-02"),
			item.ExpectedDeliveryDate.Format("2006-01-02"),
			item.SuggestedQuantity,
			item.EconomicOrderQty,
			item.CurrentStock,
			item.ProjectedStock,
			item.EstimatedCost,
			string(item.Priority),
			string(item.Status),
			item.Reasoning.Summary,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

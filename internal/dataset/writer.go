package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"workorder-classifier-go/internal/types"
)

const outputSheet = "Classificadas"

var resultHeaders = []string{"CLASSIFICACAO", "CONFIANCA", "METODO", "MOTIVO"}

// WriteResults writes the original columns plus the four classification
// columns, one row per input record in input order.
func WriteResults(table *Table, results []types.ClassificationResult, path string) error {
	if len(results) != len(table.Rows) {
		return fmt.Errorf("result count %d does not match row count %d", len(results), len(table.Rows))
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(outputSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header := append(append([]string{}, table.Headers...), resultHeaders...)
	if err := writeRow(f, 1, header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		res := results[i]
		// GetRows trims trailing empty cells; pad so the result columns
		// line up with their headers.
		padded := append([]string{}, row...)
		for len(padded) < len(table.Headers) {
			padded = append(padded, "")
		}
		out := append(padded, string(res.Category),
			fmt.Sprintf("%d%%", res.Confidence), string(res.Method), res.Rationale)
		if err := writeRow(f, i+2, out); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, values []string) error {
	cellName, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(outputSheet, cellName, &row); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

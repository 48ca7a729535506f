// Package dataset reads work-order spreadsheets and writes the labeled
// output sheet.
package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"workorder-classifier-go/internal/normalize"
	"workorder-classifier-go/internal/types"
)

// Historical header spellings per logical field, compared after
// normalization so accents and case never matter.
var fieldAliases = map[string][]string{
	"order_id":        {"ordem serv", "os", "numero os"},
	"service_text":    {"servico", "descricao do servico", "descricao"},
	"asset_name":      {"nome do bem", "bem", "equipamento"},
	"line":            {"linha"},
	"area":            {"area de manutencao", "area"},
	"actual_start":    {"dt inicio", "data inicio", "inicio real"},
	"scheduled_start": {"previsto inicio", "inicio previsto", "data prevista"},
}

// Table keeps the original sheet alongside the resolved records so the
// writer can round-trip every input column untouched.
type Table struct {
	Headers []string
	Rows    [][]string
	Orders  []types.WorkOrder
}

// Load reads the first sheet and resolves headers via the alias table.
// Rows without any service text still come back as records; the
// classifier is the one that decides what an unusable row means.
func Load(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	header := rows[0]
	idx := resolveHeader(header)

	table := &Table{Headers: header}
	for _, r := range rows[1:] {
		if emptyRow(r) {
			continue
		}
		table.Rows = append(table.Rows, r)
		table.Orders = append(table.Orders, types.WorkOrder{
			OrderID:        cell(r, idx["order_id"]),
			ServiceText:    cell(r, idx["service_text"]),
			AssetName:      cell(r, idx["asset_name"]),
			Line:           cell(r, idx["line"]),
			Area:           cell(r, idx["area"]),
			ActualStart:    cell(r, idx["actual_start"]),
			ScheduledStart: cell(r, idx["scheduled_start"]),
		})
	}
	if len(table.Orders) == 0 {
		return nil, fmt.Errorf("no usable rows in %s", path)
	}
	return table, nil
}

// resolveHeader maps each logical field to a column index, first alias
// hit wins, -1 when absent.
func resolveHeader(header []string) map[string]int {
	idx := make(map[string]int, len(fieldAliases))
	for field := range fieldAliases {
		idx[field] = -1
	}
	for i, h := range header {
		n := normalize.Text(h)
		for field, aliases := range fieldAliases {
			if idx[field] != -1 {
				continue
			}
			for _, alias := range aliases {
				if n == alias {
					idx[field] = i
					break
				}
			}
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}

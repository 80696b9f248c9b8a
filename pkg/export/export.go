// Package export renders a comparison result to a binary xlsx artifact.
// The logical structure — header row, one data row per diff row, highlighted
// changed cells — is the contract; the exact binary layout is not.
package export

import (
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tagdiff/pkg/diff"
	"github.com/agentstation/tagdiff/pkg/errors"
)

const (
	// SheetName is the single sheet the artifact contains.
	SheetName = "Comparison Summary"

	// HighlightColor is the fill applied to any cell containing the change
	// arrow, so modifications stand out at a glance.
	HighlightColor = "FFFF00"

	// filenameLayout renders as Comparison_DD_MM_YYYY_HH_MM.xlsx.
	filenameLayout = "02_01_2006_15_04"
)

// Filename returns the conventional timestamped artifact name for a
// comparison run. Human-readable convenience only, not a contract.
func Filename(now time.Time) string {
	return "Comparison_" + now.Format(filenameLayout) + ".xlsx"
}

// Write renders the result as an xlsx workbook and streams it to w.
func Write(w io.Writer, result *diff.Result) error {
	wb, err := build(result)
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := wb.Write(w); err != nil {
		return errors.WrapIO("write", "workbook", err)
	}
	return nil
}

// Bytes renders the result as an xlsx workbook and returns the buffer.
func Bytes(result *diff.Result) ([]byte, error) {
	wb, err := build(result)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, errors.WrapIO("write", "workbook", err)
	}
	return buf.Bytes(), nil
}

// build assembles the workbook: one sheet, a header row of
// Tag, Change Type, the column union, and Change Summary, then one row per
// diff row in result order.
func build(result *diff.Result) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), SheetName); err != nil {
		return nil, errors.WrapIO("create sheet", SheetName, err)
	}

	highlight, err := wb.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{HighlightColor},
		},
	})
	if err != nil {
		return nil, errors.WrapIO("create style", SheetName, err)
	}

	arrow := result.Arrow()
	if arrow == "" {
		arrow = diff.DefaultArrow
	}

	header := make([]string, 0, len(result.Columns)+3)
	header = append(header, "Tag", "Change Type")
	header = append(header, result.Columns...)
	header = append(header, "Change Summary")

	if err := setRow(wb, 1, header, arrow, highlight); err != nil {
		return nil, err
	}

	for i, row := range result.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Tag, string(row.Change))
		for _, col := range result.Columns {
			cells = append(cells, row.Cells[col])
		}
		cells = append(cells, row.Summary())

		if err := setRow(wb, i+2, cells, arrow, highlight); err != nil {
			return nil, err
		}
	}

	return wb, nil
}

// setRow writes one sheet row, applying the highlight fill to every cell
// whose value contains the change arrow.
func setRow(wb *excelize.File, rowIdx int, values []string, arrow string, highlight int) error {
	for colIdx, value := range values {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
		if err != nil {
			return errors.WrapIO("address cell", SheetName, err)
		}
		if err := wb.SetCellStr(SheetName, cell, value); err != nil {
			return errors.WrapIO("set cell", cell, err)
		}
		if strings.Contains(value, arrow) {
			if err := wb.SetCellStyle(SheetName, cell, cell, highlight); err != nil {
				return errors.WrapIO("style cell", cell, err)
			}
		}
	}
	return nil
}

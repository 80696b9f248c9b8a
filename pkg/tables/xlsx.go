package tables

import (
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tagdiff/pkg/errors"
)

// LoadOption configures how a spreadsheet is loaded.
type LoadOption func(*loadOptions)

type loadOptions struct {
	sheet string
}

// WithSheet selects a named sheet instead of the workbook's first sheet.
func WithSheet(name string) LoadOption {
	return func(o *loadOptions) {
		o.sheet = name
	}
}

// LoadXLSX loads a Table from an xlsx workbook on disk. The first row of the
// selected sheet is the header; typed cells are read as their displayed text.
func LoadXLSX(path string, opts ...LoadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return ReadXLSX(f, filepath.Base(path), opts...)
}

// ReadXLSX loads a Table from xlsx workbook bytes. The name is used in error
// messages and as Table.Name.
func ReadXLSX(r io.Reader, name string, opts ...LoadOption) (*Table, error) {
	var options loadOptions
	for _, opt := range opts {
		opt(&options)
	}

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.WrapParse("xlsx", name, err)
	}
	defer wb.Close()

	sheet := options.sheet
	if sheet == "" {
		sheets := wb.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewParseError("xlsx", name, "workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapParse("xlsx", name, err)
	}
	if len(rows) == 0 {
		return nil, errors.NewSchemaError(name, KeyColumn)
	}

	return New(name, rows[0], rows[1:])
}

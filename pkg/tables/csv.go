package tables

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/tagdiff/pkg/errors"
)

// LoadCSV loads a Table from a csv file on disk. The first record is the
// header.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	return ReadCSV(f, filepath.Base(path))
}

// ReadCSV loads a Table from csv content. The name is used in error messages
// and as Table.Name.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are padded by New

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}
	if len(records) == 0 {
		return nil, errors.NewSchemaError(name, KeyColumn)
	}

	return New(name, records[0], records[1:])
}

// Load loads a Table from disk, dispatching on file extension. ".csv" loads
// as csv; anything else is treated as an xlsx workbook.
func Load(path string, opts ...LoadOption) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadCSV(path)
	}
	return LoadXLSX(path, opts...)
}

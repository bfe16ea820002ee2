// Package dataset loads supplier records from flat files for the fit and
// batch-predict commands.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/procurelens/supplier-risk/internal/errors"
	"github.com/procurelens/supplier-risk/internal/supplier"
)

// LoadCSV reads supplier records from a headered CSV file. Empty cells are
// missing values; unparseable numeric cells fail with the row and column
// named.
func LoadCSV(path string) ([]supplier.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("dataset", err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses supplier records from CSV content
func ReadCSV(r io.Reader) ([]supplier.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewValidationError("dataset has no header row", "", "")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var records []supplier.Record
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError(
				fmt.Sprintf("malformed CSV row %d", rowNum), "", "")
		}

		rec, err := recordFromRow(columns, row, rowNum)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func recordFromRow(columns map[string]int, row []string, rowNum int) (supplier.Record, error) {
	cell := func(col string) (string, bool) {
		idx, ok := columns[col]
		if !ok || idx >= len(row) {
			return "", false
		}
		if row[idx] == "" {
			return "", false
		}
		return row[idx], true
	}

	rec := supplier.Record{
		Flags:    make(map[string]string),
		Numerics: make(map[string]float64),
	}

	if v, ok := cell("supplier_id"); ok {
		rec.ID = v
	}
	if v, ok := cell("supplier_name"); ok {
		rec.Name = v
	}

	if v, ok := cell(supplier.ColCountry); ok {
		rec.Country = v
	}
	if v, ok := cell(supplier.ColRegion); ok {
		rec.Region = v
	}
	if v, ok := cell(supplier.ColSector); ok {
		rec.Sector = v
	}
	if v, ok := cell(supplier.ColFamily); ok {
		rec.Family = v
	}

	for _, col := range supplier.FlagColumns {
		if v, ok := cell(col); ok {
			rec.Flags[col] = v
		}
	}

	for _, col := range supplier.NumericColumns {
		v, ok := cell(col)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return supplier.Record{}, errors.NewValidationError(
				fmt.Sprintf("row %d column %q is not numeric", rowNum, col), col, v)
		}
		rec.Numerics[col] = parsed
	}

	return rec, nil
}

// LoadJSON reads supplier records from a JSON file holding either a single
// record object or an array of them
func LoadJSON(path string) ([]supplier.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewLoadError("dataset", err)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, errors.NewValidationError("dataset is neither a JSON object nor an array", "", "")
		}
		rows = []map[string]interface{}{single}
	}

	records := make([]supplier.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := supplier.FromMap(row)
		if err != nil {
			return nil, errors.WrapError(err, "record %d", i)
		}
		records = append(records, rec)
	}

	return records, nil
}

package memory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

// FromCSV reads a header-first CSV stream into a Table. Columns named in
// numericColumns are parsed as numbers; empty cells become nulls in every
// column. A numeric cell that fails to parse is an error, not a silent
// null, so malformed inputs surface before any metric is computed.
func FromCSV(r io.Reader, numericColumns []string) (*Table, error) {
	numeric := make(map[string]bool, len(numericColumns))
	for _, c := range numericColumns {
		numeric[c] = true
	}

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty (missing header row)")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make([]table.ColumnInfo, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		dataType := "text"
		if numeric[name] {
			dataType = "numeric"
		}
		columns[i] = table.ColumnInfo{Name: name, DataType: dataType}
	}

	var rows []table.Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}
		line++

		row := make(table.Row, len(columns))
		for i, col := range columns {
			cell := record[i]
			switch {
			case cell == "":
				row[col.Name] = table.Null()
			case numeric[col.Name]:
				f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: column %s: %q is not numeric", line, col.Name, cell)
				}
				row[col.Name] = table.Number(f)
			default:
				row[col.Name] = table.Text(cell)
			}
		}
		rows = append(rows, row)
	}

	return New(columns, rows), nil
}

// LoadCSVFile opens path and loads it with FromCSV.
func LoadCSVFile(path string, numericColumns []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()
	return FromCSV(f, numericColumns)
}

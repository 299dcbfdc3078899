package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pivolan/argo_explorer/domain/models"
)

const Separator = ','

var (
	ErrNoHeader      = errors.New("csv has no rows")
	ErrMissingColumn = errors.New("missing column")
)

// LoadCSV reads a dataset whose columns are declared up front. A header row
// is matched to the column keys ignoring case and punctuation; a file
// without a header must list the columns in declared order. Record ids come
// from an "id" column when there is one, otherwise from the 1-based row
// number. A repeated id gets the row number appended.
func LoadCSV(r io.Reader, name string, columns []models.Column) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	analysis := AnalyzeHeaders(first)
	if analysis == nil {
		return nil, ErrNoHeader
	}

	index := make([]int, len(columns))
	idIndex := -1
	if analysis.FirstRowIsData {
		if len(first) < len(columns) {
			return nil, fmt.Errorf("headerless csv has %d fields, want %d: %w", len(first), len(columns), ErrMissingColumn)
		}
		for i := range columns {
			index[i] = i
		}
	} else {
		positions := make(map[string]int, len(analysis.Headers))
		for i, h := range analysis.Headers {
			positions[h] = i
		}
		for i, c := range columns {
			pos, ok := positions[NormalizeHeader(c.Key)]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c.Key)
			}
			index[i] = pos
		}
		if pos, ok := positions["id"]; ok {
			idIndex = pos
		}
	}

	var records []models.Record
	seen := map[string]bool{}
	row := 0
	add := func(fields []string) {
		row++
		id := strconv.Itoa(row)
		if idIndex >= 0 && idIndex < len(fields) && strings.TrimSpace(fields[idIndex]) != "" {
			id = strings.TrimSpace(fields[idIndex])
		}
		if seen[id] {
			id = fmt.Sprintf("%s#%d", id, row)
		}
		seen[id] = true
		values := make(map[string]models.Value, len(columns))
		for i, c := range columns {
			raw := ""
			if index[i] < len(fields) {
				raw = fields[index[i]]
			}
			values[c.Key] = models.ParseValue(c.Type, raw)
		}
		records = append(records, models.NewRecord(models.RecordID(id), values))
	}
	if analysis.FirstRowIsData {
		add(first)
	}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row+1, err)
		}
		add(fields)
	}
	return models.NewDataset(name, columns, records), nil
}

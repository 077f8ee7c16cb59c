package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"dayssince/internal/duration"
	"dayssince/internal/storage"
)

// CSVImporter reads a spreadsheet export with the header
// name,date[,anniversary][,due_days]. Columns may appear in any order.
type CSVImporter struct{}

func (c *CSVImporter) Name() string {
	return "csv"
}

func (c *CSVImporter) Import(r io.Reader, store *storage.Store) (*ImportResult, error) {
	p, err := c.parse(r)
	if err != nil {
		return nil, err
	}
	return addAll(p, store, c.Name()), nil
}

func (c *CSVImporter) Preview(r io.Reader) ([]storage.EventInput, error) {
	p, err := c.parse(r)
	if err != nil {
		return nil, err
	}
	return p.inputs, nil
}

func (c *CSVImporter) parse(r io.Reader) (parsed, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return parsed{}, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM
		}
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"name", "date"} {
		if _, ok := colIndex[col]; !ok {
			return parsed{}, fmt.Errorf("missing required column: %s", col)
		}
	}

	get := func(record []string, col string) string {
		if idx, ok := colIndex[col]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}

	var p parsed
	line := 1
	for {
		record, err := csvReader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return parsed{}, fmt.Errorf("failed to read CSV: %w", err)
		}

		name := get(record, "name")
		if name == "" && get(record, "date") == "" {
			continue // blank row
		}

		in, err := rowInput(name, get(record, "date"), get(record, "anniversary"), get(record, "due_days"))
		if err != nil {
			p.errors = append(p.errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		p.inputs = append(p.inputs, in)
	}
	return p, nil
}

func rowInput(name, date, anniversary, dueDays string) (storage.EventInput, error) {
	in := storage.EventInput{Name: name}
	if name == "" {
		return in, fmt.Errorf("name is empty")
	}

	d, err := duration.ParseDate(date)
	if err != nil {
		return in, err
	}
	in.Date = d

	if anniversary != "" {
		on, err := parseFlag(anniversary)
		if err != nil {
			return in, fmt.Errorf("anniversary: %w", err)
		}
		in.ShowAnniversary = on
	}

	if dueDays != "" {
		n, err := strconv.Atoi(dueDays)
		if err != nil || n < 0 {
			return in, fmt.Errorf("due_days must be a non-negative whole number, got %q", dueDays)
		}
		in.DueDuration = n
		in.ShowNextDueDate = n > 0
	}
	return in, nil
}

func parseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y", "x":
		return true, nil
	case "0", "false", "no", "n", "":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes or no, got %q", s)
	}
}

package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// table is a GTFS CSV file read into memory with a header-name -> column
// index lookup, so each entity parser can pull fields by name instead of
// position. encoding/csv already strips surrounding double quotes and
// preserves commas inside quoted fields, so no ad-hoc line splitting is
// needed here.
type table struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(name string, r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &table{name: name, cols: map[string]int{}}, nil
	}
	if err != nil {
		return nil, errMalformed(name, 1, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}

	var rows [][]string
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errMalformed(name, line, err)
		}
		rows = append(rows, record)
	}

	return &table{name: name, cols: cols, rows: rows}, nil
}

func (t *table) has(field string) bool {
	_, ok := t.cols[field]
	return ok
}

func (t *table) get(row []string, field string) string {
	i, ok := t.cols[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) getInt(row []string, field string, line int) (int, error) {
	v := t.get(row, field)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errMalformed(t.name, line, fmt.Errorf("field %q: %w", field, err))
	}
	return n, nil
}

func (t *table) getFloat(row []string, field string, line int) (float64, bool, error) {
	v := t.get(row, field)
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, errMalformed(t.name, line, fmt.Errorf("field %q: %w", field, err))
	}
	return f, true, nil
}

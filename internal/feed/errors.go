package feed

import "fmt"

// MissingTableError reports a required GTFS table that was absent from the feed.
// It is fatal: the planner cannot operate without its required inputs.
type MissingTableError struct {
	Table string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("gtfs feed: missing required table %q", e.Table)
}

// MalformedRowError reports a row that could not be parsed into its entity,
// or a primary key collision within a table.
type MalformedRowError struct {
	Table string
	Line  int
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("gtfs feed: malformed row in %q at line %d: %v", e.Table, e.Line, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

func errMissing(table string) error {
	return &MissingTableError{Table: table}
}

func errMalformed(table string, line int, err error) error {
	return &MalformedRowError{Table: table, Line: line, Err: err}
}

func errEmptyField(field string) error {
	return fmt.Errorf("field %q must not be empty", field)
}

func errDuplicateKey(field, value string) error {
	return fmt.Errorf("duplicate %s %q", field, value)
}

func errDanglingRef(field, value string) error {
	return fmt.Errorf("%s %q does not reference an existing entity", field, value)
}

func errInvalidValue(field string, row []string) error {
	return fmt.Errorf("field %q has an invalid value in row %v", field, row)
}

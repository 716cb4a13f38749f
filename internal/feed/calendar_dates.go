package feed

// ExceptionType is the GTFS calendar_dates.txt exception_type column:
// 1 adds service on the given date, 2 removes it.
type ExceptionType int

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

// calendarException is one calendar_dates.txt row. calendar_dates.txt is
// optional, unlike the five required tables, so its absence is not an error.
type calendarException struct {
	ServiceID string
	Date      ServiceDate
	Type      ExceptionType
}

func parseCalendarDates(t *table) ([]calendarException, error) {
	if t == nil {
		return nil, nil
	}

	exceptions := make([]calendarException, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "service_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("service_id"))
		}

		date, err := t.getInt(row, "date", line)
		if err != nil {
			return nil, err
		}
		exType, err := t.getInt(row, "exception_type", line)
		if err != nil {
			return nil, err
		}
		if exType != int(ExceptionAdded) && exType != int(ExceptionRemoved) {
			return nil, errMalformed(t.name, line, errInvalidValue("exception_type", row))
		}

		exceptions = append(exceptions, calendarException{
			ServiceID: id,
			Date:      ServiceDate(date),
			Type:      ExceptionType(exType),
		})
	}

	return exceptions, nil
}

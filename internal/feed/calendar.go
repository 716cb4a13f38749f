package feed

import "time"

// ServiceDate is a calendar date expressed as YYYYMMDD, matching the GTFS
// wire format exactly so no conversion is needed when comparing against
// calendar.txt's start_date/end_date.
type ServiceDate int

// Time returns the ServiceDate as a time.Time at midnight UTC.
func (d ServiceDate) Time() time.Time {
	y := int(d) / 10000
	m := (int(d) / 100) % 100
	dd := int(d) % 100
	return time.Date(y, time.Month(m), dd, 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex returns the calendar.txt column index for this date
// (0=Monday ... 6=Sunday).
func (d ServiceDate) WeekdayIndex() int {
	wd := d.Time().Weekday() // Sunday = 0 ... Saturday = 6
	return (int(wd) + 6) % 7
}

// NewServiceDate builds a ServiceDate from a calendar year/month/day.
func NewServiceDate(t time.Time) ServiceDate {
	return ServiceDate(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// ServiceCalendarEntry is an immutable GTFS calendar.txt row.
type ServiceCalendarEntry struct {
	ServiceID string
	Weekday   [7]bool // index 0 = Monday ... 6 = Sunday
	StartDate ServiceDate
	EndDate   ServiceDate
}

// ActiveOn reports whether the service runs on the given date, ignoring any
// calendar_dates.txt exceptions (those are layered on separately, see
// calendar_dates.go).
func (e ServiceCalendarEntry) ActiveOn(date ServiceDate, weekdayIndex int) bool {
	if date < e.StartDate || date > e.EndDate {
		return false
	}
	return e.Weekday[weekdayIndex]
}

func parseCalendar(t *table) (map[string]ServiceCalendarEntry, error) {
	entries := make(map[string]ServiceCalendarEntry, len(t.rows))

	dayFields := [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

	for i, row := range t.rows {
		line := i + 2
		id := t.get(row, "service_id")
		if id == "" {
			return nil, errMalformed(t.name, line, errEmptyField("service_id"))
		}
		if _, dup := entries[id]; dup {
			return nil, errMalformed(t.name, line, errDuplicateKey("service_id", id))
		}

		var entry ServiceCalendarEntry
		entry.ServiceID = id

		for d, field := range dayFields {
			v, err := t.getInt(row, field, line)
			if err != nil {
				return nil, err
			}
			entry.Weekday[d] = v == 1
		}

		start, err := t.getInt(row, "start_date", line)
		if err != nil {
			return nil, err
		}
		end, err := t.getInt(row, "end_date", line)
		if err != nil {
			return nil, err
		}
		entry.StartDate = ServiceDate(start)
		entry.EndDate = ServiceDate(end)

		entries[id] = entry
	}

	return entries, nil
}

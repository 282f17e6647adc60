package parse

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/subwaylabs/traintrack/model"
)

type CalendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

// ParseCalendar reads calendar rows, preserving file order. Row
// order matters downstream: when several services cover a date, the
// first row in the table wins.
func ParseCalendar(data io.Reader) ([]model.Calendar, error) {
	calendarCsv := []*CalendarCSV{}
	if err := gocsv.Unmarshal(data, &calendarCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling csv: %w", err)
	}

	knownServices := map[string]bool{}
	calendars := []model.Calendar{}

	for _, c := range calendarCsv {
		if c.ServiceID == "" {
			return nil, fmt.Errorf("empty service_id")
		}
		if knownServices[c.ServiceID] {
			return nil, fmt.Errorf("repeated service_id '%s'", c.ServiceID)
		}
		knownServices[c.ServiceID] = true

		var weekday int8
		for _, day := range []struct {
			name string
			flag int8
			bit  time.Weekday
		}{
			{"monday", c.Monday, time.Monday},
			{"tuesday", c.Tuesday, time.Tuesday},
			{"wednesday", c.Wednesday, time.Wednesday},
			{"thursday", c.Thursday, time.Thursday},
			{"friday", c.Friday, time.Friday},
			{"saturday", c.Saturday, time.Saturday},
			{"sunday", c.Sunday, time.Sunday},
		} {
			if day.flag == 1 {
				weekday |= 1 << day.bit
			} else if day.flag != 0 {
				return nil, fmt.Errorf("invalid %s value '%d'", day.name, day.flag)
			}
		}

		if _, err := model.ParseDate(c.StartDate); err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		if _, err := model.ParseDate(c.EndDate); err != nil {
			return nil, fmt.Errorf("parsing end_date: %w", err)
		}
		if c.StartDate > c.EndDate {
			return nil, fmt.Errorf("service '%s' has start_date after end_date", c.ServiceID)
		}

		calendars = append(calendars, model.Calendar{
			ServiceID: c.ServiceID,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Weekday:   weekday,
		})
	}

	return calendars, nil
}

package parse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"github.com/subwaylabs/traintrack/model"
)

// The static schedule tables the reconciliation pipeline needs.
// Loaded once at job start; read-only afterwards.
type StaticTables struct {
	Calendars []model.Calendar
	Trips     []model.Trip
	StopTimes []model.StopTime

	// stop_id -> stop_name
	StopNames map[string]string
}

// LoadStatic reads calendar.txt, trips.txt, stops.txt and
// stop_times.txt from a directory. A missing or malformed file is a
// fatal configuration error: no partial load is returned.
func LoadStatic(dir string) (*StaticTables, error) {
	// LazyCSVReader required (at least) to survive sloppy use of
	// quotes. The BOM reader strips unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	tables := &StaticTables{}

	for _, load := range []struct {
		name  string
		parse func(io.Reader) error
	}{
		{"calendar.txt", func(r io.Reader) (err error) {
			tables.Calendars, err = ParseCalendar(r)
			return
		}},
		{"trips.txt", func(r io.Reader) (err error) {
			tables.Trips, err = ParseTrips(r)
			return
		}},
		{"stops.txt", func(r io.Reader) (err error) {
			tables.StopNames, err = ParseStops(r)
			return
		}},
		{"stop_times.txt", func(r io.Reader) (err error) {
			tables.StopTimes, err = ParseStopTimes(r)
			return
		}},
	} {
		f, err := os.Open(filepath.Join(dir, load.name))
		if err != nil {
			return nil, fmt.Errorf("missing static table %s: %w", load.name, err)
		}
		err = load.parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", load.name, err)
		}
	}

	return tables, nil
}

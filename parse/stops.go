package parse

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

type StopCSV struct {
	ID   string `csv:"stop_id"`
	Name string `csv:"stop_name"`
}

// ParseStops builds the stop_id -> stop_name lookup. Stops without a
// name are tolerated; ingestion falls back to the raw stop ID.
func ParseStops(data io.Reader) (map[string]string, error) {
	stopCsv := []*StopCSV{}
	if err := gocsv.Unmarshal(data, &stopCsv); err != nil {
		return nil, fmt.Errorf("unmarshaling stops csv: %w", err)
	}

	names := map[string]string{}
	for _, st := range stopCsv {
		if st.ID == "" {
			return nil, fmt.Errorf("empty stop_id")
		}
		if _, found := names[st.ID]; found {
			return nil, fmt.Errorf("repeated stop_id '%s'", st.ID)
		}
		names[st.ID] = st.Name
	}

	return names, nil
}

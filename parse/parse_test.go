package parse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStaticDir(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
		require.NoError(t, err)
	}
	return dir
}

func completeStaticDir(t *testing.T) map[string]string {
	return map[string]string{
		"calendar.txt": `service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date
Weekday,1,1,1,1,1,0,0,20240101,20241231
`,
		"trips.txt": `route_id,service_id,trip_id,direction_id
1,Weekday,AFA23GEN-1038-Weekday-00_000600_1..S03R,1
`,
		"stops.txt": `stop_id,stop_name
101S,Van Cortlandt Park-242 St
`,
		"stop_times.txt": `trip_id,stop_id,arrival_time
AFA23GEN-1038-Weekday-00_000600_1..S03R,101S,06:00:00
`,
	}
}

func TestLoadStatic(t *testing.T) {
	dir := writeStaticDir(t, completeStaticDir(t))

	tables, err := LoadStatic(dir)
	require.NoError(t, err)

	require.Len(t, tables.Calendars, 1)
	assert.Equal(t, "Weekday", tables.Calendars[0].ServiceID)
	require.Len(t, tables.Trips, 1)
	assert.Equal(t, "AFA23GEN-1038-Weekday-00_000600_1..S03R", tables.Trips[0].ID)
	require.Len(t, tables.StopTimes, 1)
	assert.Equal(t, "06:00:00", tables.StopTimes[0].Arrival)
	assert.Equal(t, "Van Cortlandt Park-242 St", tables.StopNames["101S"])
}

func TestLoadStaticMissingTable(t *testing.T) {
	for _, missing := range []string{
		"calendar.txt", "trips.txt", "stops.txt", "stop_times.txt",
	} {
		t.Run(missing, func(t *testing.T) {
			files := completeStaticDir(t)
			delete(files, missing)
			dir := writeStaticDir(t, files)

			_, err := LoadStatic(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestLoadStaticMalformedTable(t *testing.T) {
	files := completeStaticDir(t)
	files["stop_times.txt"] = `trip_id,stop_id,arrival_time
t,101S,not-a-time
`
	dir := writeStaticDir(t, files)

	_, err := LoadStatic(dir)
	assert.Error(t, err)
}

package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStops(t *testing.T) {
	names, err := ParseStops(strings.NewReader(`
stop_id,stop_name
101,Van Cortlandt Park-242 St
101N,Van Cortlandt Park-242 St
101S,Van Cortlandt Park-242 St
999,`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"101":  "Van Cortlandt Park-242 St",
		"101N": "Van Cortlandt Park-242 St",
		"101S": "Van Cortlandt Park-242 St",
		"999":  "",
	}, names)
}

func TestParseStopsErrors(t *testing.T) {
	_, err := ParseStops(strings.NewReader(`
stop_id,stop_name
,Nameless`))
	assert.Error(t, err)

	_, err = ParseStops(strings.NewReader(`
stop_id,stop_name
101,First
101,Second`))
	assert.Error(t, err)
}

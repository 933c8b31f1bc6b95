package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateScanTimeMarshalsDateOnly(t *testing.T) {
	// DATE columns come back from the driver as time.Time; the JSON form
	// must stay a plain calendar day.
	var d Date
	require.NoError(t, d.Scan(time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-15"`, string(out))
}

func TestDateScanStrings(t *testing.T) {
	for _, raw := range []string{
		"1990-01-15",
		"1990-01-15T00:00:00Z",
		"1990-01-15 00:00:00",
	} {
		var d Date
		require.NoError(t, d.Scan(raw), raw)
		out, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"1990-01-15"`, string(out), raw)
	}

	var d Date
	assert.Error(t, d.Scan("not-a-date"))
}

func TestDateJSONRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1990-01-15"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-15"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"15-01-1990"`), &d))
}

func TestDateValueNilWhenZero(t *testing.T) {
	var d Date
	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateAndTime(t *testing.T) {
	ts := time.Date(2026, 9, 1, 8, 5, 9, 0, time.UTC)
	assert.Equal(t, "01/09/2026", FormatDate(ts))
	assert.Equal(t, "08:05:09", FormatTime(ts))
}

func TestParseRecordDate(t *testing.T) {
	parsed, err := ParseRecordDate("25/12/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseRecordDate("2026-12-25")
	assert.Error(t, err)
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "rfc3339", input: "2026-09-01T08:00:00Z"},
		{name: "space separated", input: "2026-09-01 08:00:00"},
		{name: "date only", input: "2026-09-01"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-time", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseISOTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.False(t, parsed.IsZero())
		})
	}
}

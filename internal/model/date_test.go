package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2023-03-01", FormatDate(d))

	_, err = ParseDate("03/01/2023")
	assert.Error(t, err)
}

func TestDay(t *testing.T) {
	in := time.Date(2023, 3, 1, 17, 45, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Day(in))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2023-03-01", "2023-03-01", 0},
		{"2023-03-01", "2023-03-08", 7},
		{"2023-03-08", "2023-03-01", 7},
		{"2023-02-27", "2023-03-01", 2},
	}
	for _, tt := range tests {
		a, _ := ParseDate(tt.a)
		b, _ := ParseDate(tt.b)
		assert.Equal(t, tt.want, DaysBetween(a, b), "DaysBetween(%s, %s)", tt.a, tt.b)
	}
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2026, 3, 15), 1, date(2026, 4, 15)},
		{"clamp to february", date(2026, 1, 31), 1, date(2026, 2, 28)},
		{"clamp to leap february", date(2028, 1, 31), 1, date(2028, 2, 29)},
		{"clamp to thirty days", date(2026, 3, 31), 1, date(2026, 4, 30)},
		{"year rollover", date(2026, 12, 10), 1, date(2027, 1, 10)},
		{"multi year", date(2026, 11, 30), 15, date(2028, 2, 29)},
		{"backwards", date(2026, 1, 31), -2, date(2025, 11, 30)},
		{"zero", date(2026, 5, 31), 0, date(2026, 5, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestSearchWindow(t *testing.T) {
	now := time.Date(2026, 12, 31, 17, 45, 3, 0, time.UTC)
	from, to := SearchWindow(now, 2)
	assert.Equal(t, date(2026, 12, 31), from)
	assert.Equal(t, date(2027, 2, 28), to)
}

func TestFormatSearchDate(t *testing.T) {
	assert.Equal(t, "05/02/2027", FormatSearchDate(date(2027, 2, 5)))
}

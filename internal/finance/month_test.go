package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActiveMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"Before rollover", time.Date(2026, time.May, 19, 12, 0, 0, 0, time.UTC), "mayo"},
		{"On rollover day", time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC), "junio"},
		{"After rollover", time.Date(2026, time.May, 28, 0, 0, 0, 0, time.UTC), "junio"},
		{"December wraps to January", time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC), "enero"},
		{"First of month", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "enero"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ActiveMonth(tc.date, DefaultRolloverDay))
		})
	}
}

func TestActiveMonthCustomRollover(t *testing.T) {
	d := time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "junio", ActiveMonth(d, 15))
	assert.Equal(t, "mayo", ActiveMonth(d, 16))
	// non-positive rollover falls back to the default
	assert.Equal(t, "mayo", ActiveMonth(d, 0))
}

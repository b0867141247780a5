package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	dob := date(2015, time.May, 15)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", date(2024, time.May, 14), 8},
		{"on birthday", date(2024, time.May, 15), 9},
		{"day after birthday", date(2024, time.May, 16), 9},
		{"earlier month", date(2024, time.January, 1), 8},
		{"later month", date(2024, time.December, 31), 9},
		{"same day same year", date(2015, time.May, 15), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(dob, tt.now))
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

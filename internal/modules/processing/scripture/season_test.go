package scripture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEasterSunday(t *testing.T) {
	cases := map[int]string{
		2000: "2000-04-23",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2027: "2027-03-28",
		2038: "2038-04-25",
	}
	for year, want := range cases {
		assert.Equal(t, want, EasterSunday(year).Format(time.DateOnly), year)
	}
}

func TestSeasonFor(t *testing.T) {
	cases := []struct {
		date string
		want Season
	}{
		{"2026-01-01", SeasonChristmas},
		{"2026-01-11", SeasonChristmas}, // Baptism of the Lord
		{"2026-01-12", SeasonOrdinary},
		{"2026-02-17", SeasonOrdinary},
		{"2026-02-18", SeasonLent}, // Ash Wednesday
		{"2026-04-02", SeasonLent}, // Holy Thursday
		{"2026-04-05", SeasonEaster},
		{"2026-05-24", SeasonEaster}, // Pentecost
		{"2026-05-25", SeasonOrdinary},
		{"2026-11-28", SeasonOrdinary},
		{"2026-11-29", SeasonAdvent},
		{"2026-12-24", SeasonAdvent},
		{"2026-12-25", SeasonChristmas},
		{"2026-12-31", SeasonChristmas},
	}
	for _, tc := range cases {
		day, err := time.Parse(time.DateOnly, tc.date)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, SeasonFor(day.Add(15*time.Hour)), tc.date)
	}
}

func TestSeasonForUsesLocalCalendarDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 02:00 UTC on Ash Wednesday is still the previous evening in New York.
	instant := time.Date(2026, 2, 18, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, SeasonLent, SeasonFor(instant))
	assert.Equal(t, SeasonOrdinary, SeasonFor(instant.In(ny)))
}

func TestParseSeasonAndLabel(t *testing.T) {
	s, ok := ParseSeason("Ordinary Time")
	assert.True(t, ok)
	assert.Equal(t, SeasonOrdinary, s)

	s, ok = ParseSeason("LENT")
	assert.True(t, ok)
	assert.Equal(t, "Cuaresma", s.Label("es"))
	assert.Equal(t, "Lent", s.Label("en"))

	_, ok = ParseSeason("summer")
	assert.False(t, ok)
}

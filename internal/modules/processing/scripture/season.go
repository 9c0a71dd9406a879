package scripture

import (
	"strings"
	"time"
)

// Season is a period of the liturgical year.
type Season string

const (
	SeasonAdvent    Season = "advent"
	SeasonChristmas Season = "christmas"
	SeasonLent      Season = "lent"
	SeasonEaster    Season = "easter"
	SeasonOrdinary  Season = "ordinary_time"
)

var seasonLabels = map[Season]map[string]string{
	SeasonAdvent:    {LangEnglish: "Advent", LangSpanish: "Adviento"},
	SeasonChristmas: {LangEnglish: "Christmas", LangSpanish: "Navidad"},
	SeasonLent:      {LangEnglish: "Lent", LangSpanish: "Cuaresma"},
	SeasonEaster:    {LangEnglish: "Easter", LangSpanish: "Pascua"},
	SeasonOrdinary:  {LangEnglish: "Ordinary Time", LangSpanish: "Tiempo Ordinario"},
}

// Label returns the display name of the season.
func (s Season) Label(language string) string {
	labels, ok := seasonLabels[s]
	if !ok {
		return string(s)
	}
	return labels[NormalizeLanguage(language)]
}

// ParseSeason accepts a season identifier such as "lent" or "ordinary time".
func ParseSeason(raw string) (Season, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	switch Season(key) {
	case SeasonAdvent, SeasonChristmas, SeasonLent, SeasonEaster, SeasonOrdinary:
		return Season(key), true
	case "ordinary":
		return SeasonOrdinary, true
	}
	return "", false
}

// SeasonFor returns the season of the calendar day of t, in t's location.
//
// Holy Week is folded into Lent. Christmas runs until the Baptism of the
// Lord, the first Sunday after January 6. Easter runs through Pentecost.
func SeasonFor(t time.Time) Season {
	day := civilDate(t)
	year := day.Year()

	if !day.Before(adventStart(year)) && day.Before(date(year, time.December, 25)) {
		return SeasonAdvent
	}
	if !day.Before(date(year, time.December, 25)) || !day.After(baptismOfTheLord(year)) {
		return SeasonChristmas
	}

	easter := EasterSunday(year)
	ashWednesday := easter.AddDate(0, 0, -46)
	pentecost := easter.AddDate(0, 0, 49)
	switch {
	case !day.Before(ashWednesday) && day.Before(easter):
		return SeasonLent
	case !day.Before(easter) && !day.After(pentecost):
		return SeasonEaster
	}
	return SeasonOrdinary
}

// EasterSunday computes the Gregorian Easter date of year (anonymous
// Gregorian algorithm), at midnight UTC.
func EasterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

// adventStart is the fourth Sunday before Christmas.
func adventStart(year int) time.Time {
	eve := date(year, time.December, 24)
	lastSunday := eve.AddDate(0, 0, -int(eve.Weekday()))
	return lastSunday.AddDate(0, 0, -21)
}

func baptismOfTheLord(year int) time.Time {
	epiphany := date(year, time.January, 6)
	return epiphany.AddDate(0, 0, 7-int(epiphany.Weekday()))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return date(y, m, d)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Lifetime is a cookie lifetime expressed either as a number of seconds or as
// a relative-time phrase ("1 hour", "2 weeks", "tomorrow") that is resolved
// against the current time when the session starts.
//
// The zero value means "unset": the store's default lifetime applies.
type Lifetime struct {
	seconds int
	phrase  string
}

// Seconds returns a lifetime of n seconds.
func Seconds(n int) Lifetime {
	return Lifetime{seconds: n}
}

// Phrase returns a lifetime resolved from a relative-time phrase.
// A phrase that is a plain integer is treated as seconds.
func Phrase(p string) Lifetime {
	p = strings.TrimSpace(p)
	if n, err := strconv.Atoi(p); err == nil {
		return Seconds(n)
	}
	return Lifetime{phrase: p}
}

// MaxLifetimeSeconds is the largest second count a time.Duration can hold.
const MaxLifetimeSeconds int64 = math.MaxInt64 / int64(time.Second)

// LifetimeDuration converts a second count into a time.Duration, saturating
// at ±MaxLifetimeSeconds.
func LifetimeDuration(seconds int) time.Duration {
	n := min(max(int64(seconds), -MaxLifetimeSeconds), MaxLifetimeSeconds)
	return time.Duration(n) * time.Second
}

// ParseLifetime parses configuration text into a Lifetime. Integers are
// seconds within ±MaxLifetimeSeconds, everything else must be a phrase
// accepted by ParseRelative. Empty input yields the zero Lifetime.
func ParseLifetime(s string) (Lifetime, error) {
	l := Phrase(s)
	if l.phrase == "" {
		if n := int64(l.seconds); n > MaxLifetimeSeconds || n < -MaxLifetimeSeconds {
			return Lifetime{}, invalidDuration(s)
		}
		return l, nil
	}
	if _, err := ParseRelative(l.phrase, time.Now()); err != nil {
		return Lifetime{}, err
	}
	return l, nil
}

// IsZero reports whether the lifetime is unset (or zero seconds).
func (l Lifetime) IsZero() bool {
	return l.phrase == "" && l.seconds == 0
}

// IsPhrase reports whether the lifetime needs to be resolved against a clock.
func (l Lifetime) IsPhrase() bool {
	return l.phrase != ""
}

func (l Lifetime) String() string {
	if l.phrase != "" {
		return l.phrase
	}
	return strconv.Itoa(l.seconds)
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so a Lifetime can be
// populated straight from environment variables.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ResolveLifetime converts a lifetime into seconds from now.
// Zero and negative results are returned as is: a phrase pointing at now or
// at the past expires the cookie immediately.
func ResolveLifetime(l Lifetime, now time.Time) (int, error) {
	if l.phrase == "" {
		return l.seconds, nil
	}

	t, err := ParseRelative(l.phrase, now)
	if err != nil {
		return 0, err
	}
	return int(t.Unix() - now.Unix()), nil
}

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseRelative parses a relative-time phrase relative to now.
//
// Accepted forms:
//   - keywords: now, today, midnight, noon, tomorrow, yesterday
//   - signed terms: "1 hour", "+2 days", "-30 minutes", "1 day 2 hours"
//   - next/last/a/an as counts: "next week", "an hour"
//   - a trailing "ago" negating the preceding terms: "3 days ago"
//   - compact durations: "90m", "1h30m", "2d", "1w"
//   - absolute timestamps: RFC 3339, "2006-01-02", "2006-01-02 15:04:05"
//
// Month and year terms use calendar arithmetic.
func ParseRelative(phrase string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(phrase))
	if s == "" {
		return time.Time{}, invalidDuration(phrase)
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(phrase), now.Location()); err == nil {
			return t, nil
		}
	}

	if !strings.ContainsAny(s, " \t") {
		if d, err := str2duration.ParseDuration(s); err == nil {
			return now.Add(d), nil
		}
	}

	return parseTerms(phrase, s, now)
}

type relative struct {
	years, months, days int
	clock               time.Duration
}

func (r relative) negate() relative {
	return relative{years: -r.years, months: -r.months, days: -r.days, clock: -r.clock}
}

type unitKind int

const (
	unitSecond unitKind = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitFortnight
	unitMonth
	unitYear
)

var units = map[string]unitKind{
	"sec": unitSecond, "secs": unitSecond, "second": unitSecond, "seconds": unitSecond,
	"min": unitMinute, "mins": unitMinute, "minute": unitMinute, "minutes": unitMinute,
	"hour": unitHour, "hours": unitHour,
	"day": unitDay, "days": unitDay,
	"week": unitWeek, "weeks": unitWeek,
	"fortnight": unitFortnight, "fortnights": unitFortnight,
	"month": unitMonth, "months": unitMonth,
	"year": unitYear, "years": unitYear,
}

var countWords = map[string]int{
	"a": 1, "an": 1, "next": 1, "last": -1, "previous": -1,
}

func (r *relative) add(n int, u unitKind) {
	switch u {
	case unitSecond:
		r.clock += time.Duration(n) * time.Second
	case unitMinute:
		r.clock += time.Duration(n) * time.Minute
	case unitHour:
		r.clock += time.Duration(n) * time.Hour
	case unitDay:
		r.days += n
	case unitWeek:
		r.days += 7 * n
	case unitFortnight:
		r.days += 14 * n
	case unitMonth:
		r.months += n
	case unitYear:
		r.years += n
	}
}

func parseTerms(original, s string, now time.Time) (time.Time, error) {
	base := now
	var rel relative
	matched := false

	tokens := strings.Fields(s)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok {
		case "now":
			matched = true
			continue
		case "today", "midnight":
			base = midnight(base)
			matched = true
			continue
		case "noon":
			base = midnight(base).Add(12 * time.Hour)
			matched = true
			continue
		case "tomorrow":
			base = midnight(base).AddDate(0, 0, 1)
			matched = true
			continue
		case "yesterday":
			base = midnight(base).AddDate(0, 0, -1)
			matched = true
			continue
		case "ago":
			if !matched {
				return time.Time{}, invalidDuration(original)
			}
			rel = rel.negate()
			continue
		}

		n, ok := countWords[tok]
		if !ok {
			parsed, err := strconv.Atoi(strings.TrimPrefix(tok, "+"))
			if err != nil {
				return time.Time{}, invalidDuration(original)
			}
			n = parsed
		}

		if i+1 >= len(tokens) {
			return time.Time{}, invalidDuration(original)
		}
		u, ok := units[tokens[i+1]]
		if !ok {
			return time.Time{}, invalidDuration(original)
		}
		rel.add(n, u)
		matched = true
		i++
	}

	if !matched {
		return time.Time{}, invalidDuration(original)
	}

	return base.AddDate(rel.years, rel.months, rel.days).Add(rel.clock), nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func invalidDuration(phrase string) error {
	return fmt.Errorf("%w: %q", ErrInvalidDuration, phrase)
}

package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ritamzico/kql/internal/ast"
)

// timespan nanosecond multipliers, per the suffix table: fractional day,
// hour, minute and second units are all legal, plus millisecond, microsecond
// and the 100ns "tick" unit inherited from the source system's time type.
const (
	nsPerTick   = 100
	nsPerMicro  = 1_000
	nsPerMilli  = 1_000_000
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 60 * nsPerMinute
	nsPerDay    = 24 * nsPerHour
)

var suffixPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(micro|tick|ms|d|h|m|s)$`)

// parseTimespanSuffix converts a lexer-captured TimespanLit token (e.g.
// "1.5h", "30s", "500ms") into nanoseconds. An optional leading "-" is
// handled by the caller, which only ever invokes this from a wrapped
// timespan(...) context, never from the general expression grammar (see
// TypedLiteralAST in internal/grammar for why a leading "-" is only
// accepted inside a typed wrapper).
func parseTimespanSuffix(raw string) (int64, error) {
	m := suffixPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, ParseError{Kind: "InvalidTimespan", Message: "malformed timespan literal: " + raw}
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, ParseError{Kind: "InvalidTimespan", Message: "malformed timespan literal: " + raw}
	}
	var unit float64
	switch m[2] {
	case "d":
		unit = nsPerDay
	case "h":
		unit = nsPerHour
	case "m":
		unit = nsPerMinute
	case "s":
		unit = nsPerSecond
	case "ms":
		unit = nsPerMilli
	case "micro":
		unit = nsPerMicro
	case "tick":
		unit = nsPerTick
	}
	return int64(value * unit), nil
}

var colonPattern = regexp.MustCompile(`^(?:(\d+)\.)?(\d{1,2}):(\d{2})(?::(\d{2})(?:\.(\d+))?)?$`)

// parseTimespanColon converts a colon-form timespan ("d.hh:mm:ss.fff",
// "hh:mm:ss", or "hh:mm") into nanoseconds.
func parseTimespanColon(raw string) (int64, error) {
	m := colonPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, ParseError{Kind: "InvalidTimespan", Message: "malformed timespan literal: " + raw}
	}
	var days, hours, minutes, seconds int64
	var fracNanos int64
	if m[1] != "" {
		days, _ = strconv.ParseInt(m[1], 10, 64)
	}
	hours, _ = strconv.ParseInt(m[2], 10, 64)
	minutes, _ = strconv.ParseInt(m[3], 10, 64)
	if m[4] != "" {
		seconds, _ = strconv.ParseInt(m[4], 10, 64)
	}
	if m[5] != "" {
		frac := m[5]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		for len(frac) < 9 {
			frac += "0"
		}
		fracNanos, _ = strconv.ParseInt(frac, 10, 64)
	}
	return days*nsPerDay + hours*nsPerHour + minutes*nsPerMinute + seconds*nsPerSecond + fracNanos, nil
}

// dateTimeLayouts are tried in order against a DateTimeLit token. Only
// stdlib layouts are used: the three formats accepted here (ISO-8601,
// RFC822, RFC850) already match time.RFC3339/time.RFC822/time.RFC850
// exactly, so a third-party date-parsing library would add a dependency
// without adding capability.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
}

// parseDateTime decomposes a DateTimeLit token into an ast.DateTime. The
// token is tried against each layout in turn; the first that parses wins.
func parseDateTime(raw string) (ast.DateTime, error) {
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		dt := ast.DateTime{
			Year:   t.Year(),
			Month:  int(t.Month()),
			Day:    t.Day(),
			Hour:   t.Hour(),
			Minute: t.Minute(),
			Second: t.Second(),
		}
		if name, offset := t.Zone(); offset != 0 || strings.ContainsAny(raw, "Zz+-") {
			tz := name
			if name == "" || name == "UTC" {
				tz = t.Format("-07:00")
			}
			dt.Timezone = &tz
		}
		return dt, nil
	}
	return ast.DateTime{}, ParseError{Kind: "InvalidDateTime", Message: "malformed datetime literal: " + raw}
}

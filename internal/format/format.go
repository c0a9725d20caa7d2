package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FmtCurrency formats an amount given in minor units.
// Whole USD amounts drop the cents: FmtCurrency(12900, "USD") => "$129".
func FmtCurrency(minor int64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	neg := minor < 0
	if neg {
		minor = -minor
	}
	var out string
	switch currency {
	case "USD":
		major, cents := minor/100, minor%100
		out = "$" + thousandSep(major)
		if cents != 0 {
			out += fmt.Sprintf(".%02d", cents)
		}
	default:
		out = strings.TrimSpace(currency + " " + thousandSep(minor))
	}
	if neg {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FmtDuration renders a session length in minutes, e.g. "60 minutes" or "1 minute".
func FmtDuration(minutes int) string {
	if minutes == 1 {
		return "1 minute"
	}
	return strconv.Itoa(minutes) + " minutes"
}

// FmtDate formats a content date in short English form.
func FmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

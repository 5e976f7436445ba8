// Package format renders money, counts and timestamps for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateTimeLayout matches a short "month day, hour:minute" rendering, e.g. "Jan 2, 03:04 PM".
const DateTimeLayout = "Jan 2, 03:04 PM"

var printer = message.NewPrinter(language.AmericanEnglish)

var abbreviations = []struct {
	value  float64
	symbol string
}{
	{1e18, "E"},
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "K"},
	{1, ""},
}

// Currency formats an amount in minor units (cents) as US dollars with
// exactly two decimals and thousands grouping: 123450 -> "$1,234.50".
func Currency(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", minor/100), minor%100)
}

// Abbreviate shortens a count to at most one fractional digit with a
// magnitude suffix: 1500 -> "1.5K", 1000 -> "1K", 999 -> "999".
func Abbreviate(n int64) string {
	if n == 0 {
		return "0"
	}

	if n < 0 {
		return "-" + Abbreviate(-n)
	}

	v := float64(n)
	for _, a := range abbreviations {
		if v >= a.value {
			return trimZeros(strconv.FormatFloat(v/a.value, 'f', 1, 64)) + a.symbol
		}
	}

	return "0"
}

// ShortDateTime formats t in loc, falling back to the local zone when loc is nil.
func ShortDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	return t.In(loc).Format(DateTimeLayout)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	s = strings.TrimRight(s, "0")

	return strings.TrimSuffix(s, ".")
}

// Package dateutils handles the date formats that appear in statement feeds.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Formats commonly seen in exported bank statements, most specific first.
// Day-first variants are listed before month-first ones because the feeds
// this system consumes use European conventions.
var statementFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"02.01.2006",
	"02.01.2006 15:04:05",
	"02/01/2006",
	"02-01-2006",
	"2.1.2006",
}

// ParseStatementDate parses a raw transaction date field. An unparsable
// date is reported as an error; the pipeline leaves such records
// unprocessed rather than guessing.
func ParseStatementDate(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty transaction date")
	}

	for _, format := range statementFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable transaction date %q", raw)
}

// DayKey formats a date as the YYYY-MM-DD key used by the exchange-rate
// table.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

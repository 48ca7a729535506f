// Package temporal derives the lead time between a work order's actual
// and scheduled start dates.
package temporal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"workorder-classifier-go/internal/types"
)

// Excel stores dates as serial day counts from this epoch.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
}

// ExtractLeadTime returns floor(scheduled - actual) in days. A missing
// value falls back to now (legacy sheet behavior); an unparseable value
// makes the whole lead time types.LeadTimeUnknown.
func ExtractLeadTime(actualRaw, scheduledRaw string) int {
	return ExtractLeadTimeAt(actualRaw, scheduledRaw, time.Now())
}

// ExtractLeadTimeAt is ExtractLeadTime with an injectable "now".
func ExtractLeadTimeAt(actualRaw, scheduledRaw string, now time.Time) int {
	actual, ok := parseDate(actualRaw, now)
	if !ok {
		return types.LeadTimeUnknown
	}
	scheduled, ok := parseDate(scheduledRaw, now)
	if !ok {
		return types.LeadTimeUnknown
	}
	return int(math.Floor(scheduled.Sub(actual).Hours() / 24))
}

func parseDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, true
	}

	// Spreadsheet serial date; fractional day-part ignored.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}

	// DD/MM/YYYY, the format the legacy sheets use.
	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD == nil && errM == nil && errY == nil {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// CompactDateLayout is the undashed form used by scoreboard date-range queries.
const CompactDateLayout = "20060102"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatCompact formats a time as YYYYMMDD in its current location.
func FormatCompact(t time.Time) string {
	return t.Format(CompactDateLayout)
}

// CompactRange renders a start/end pair as the YYYYMMDD-YYYYMMDD form
// expected by scoreboard date filters.
func CompactRange(start, end time.Time) string {
	return FormatCompact(start) + "-" + FormatCompact(end)
}

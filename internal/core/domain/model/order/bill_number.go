package order

import (
	"fmt"
	"strings"
	"time"
)

// billSequenceWidth is the zero-padded width of the per-day sequence suffix.
const billSequenceWidth = 2

// DayKey returns the calendar-date key used to scope the bill counter,
// in ISO form (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatBillNumber builds the human-readable bill number:
// a three-letter uppercased branch prefix, the day/month/two-digit-year of
// the bill date, and the zero-padded per-day sequence.
//
// Example: branch "Karol Bagh", 2026-08-28, sequence 7 -> "KAR28082607".
func FormatBillNumber(branchName string, day time.Time, sequence int) string {
	prefix := []rune(branchName)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s%s%0*d",
		strings.ToUpper(string(prefix)), day.Format("020106"), billSequenceWidth, sequence)
}

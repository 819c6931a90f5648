package calc

import "time"

// MinIntersticeDays is the legal minimum number of calendar days that
// must elapse between a contract's budget base date and an adjustment
// date (Lei 14.133/21).
const MinIntersticeDays = 365

// ElapsedDays returns the whole calendar days between two dates. The
// time-of-day and location of the inputs are ignored.
func ElapsedDays(baseDate, targetDate time.Time) int {
	base := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(target.Sub(base).Hours() / 24)
}

// ValidateInterstice reports whether the legal interstice has elapsed
// between the budget base date and the target adjustment date, along
// with the elapsed day count. The caller decides whether a failed
// check becomes an IntersticeError.
func ValidateInterstice(baseDate, targetDate time.Time) (bool, int) {
	days := ElapsedDays(baseDate, targetDate)
	return days >= MinIntersticeDays, days
}

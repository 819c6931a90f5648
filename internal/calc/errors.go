package calc

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvalidIndexError reports index values that cannot enter the K
// division: a non-positive base index or a negative adjustment index.
type InvalidIndexError struct {
	Base       decimal.Decimal
	Adjustment decimal.Decimal
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid index values: base=%s adjustment=%s (base must be > 0, both non-negative)",
		e.Base, e.Adjustment)
}

// IndexNotFoundError reports that no economic index is registered for
// a month a calculation requires.
type IndexNotFoundError struct {
	Date time.Time
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("no economic index registered for %s", e.Date.Format("01/2006"))
}

// IntersticeError reports an adjustment attempted before the legal
// interstice elapsed. ElapsedDays is carried so the caller can show
// the user how far along the waiting period is.
type IntersticeError struct {
	BaseDate    time.Time
	TargetDate  time.Time
	ElapsedDays int
}

func (e *IntersticeError) Error() string {
	return fmt.Sprintf("legal interstice not met: %d days elapsed since budget base date %s, %d required",
		e.ElapsedDays, e.BaseDate.Format("02/01/2006"), MinIntersticeDays)
}

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
)

// Interval is the bucketing unit for performance and value series.
type Interval int

const (
	Week Interval = iota
	Month
	Quarter
)

func (iv Interval) String() string {
	switch iv {
	case Week:
		return "week"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	default:
		return fmt.Sprintf("interval(%d)", int(iv))
	}
}

// ParseInterval parses an interval query parameter. Empty defaults to week.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "", "week":
		return Week, nil
	case "month":
		return Month, nil
	case "quarter":
		return Quarter, nil
	default:
		return Week, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedInterval, s)
	}
}

// Label returns the bucket label for a date. Labels are derivable from the
// date alone; two dates in the same bucket always yield the same string.
func (iv Interval) Label(date time.Time) string {
	switch iv {
	case Week:
		start := startOfISOWeek(date)
		end := start.AddDate(0, 0, 6)
		return start.Format("2 Jan") + " to " + end.Format("2 Jan 06")
	case Month:
		return date.Format("January 2006")
	case Quarter:
		return fmt.Sprintf("Q%d %d", quarterOf(date), date.Year())
	default:
		return date.Format("2006-01-02")
	}
}

// Start returns the bucket anchor for a date, used as the ordering key for
// period buckets.
func (iv Interval) Start(date time.Time) time.Time {
	switch iv {
	case Week:
		return startOfISOWeek(date)
	case Month:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Quarter:
		firstMonth := time.Month((quarterOf(date)-1)*3 + 1)
		return time.Date(date.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	default:
		return dateOnly(date)
	}
}

// Next steps a checkpoint date forward by one interval. Checkpoints step from
// the raw date rather than a bucket boundary.
func (iv Interval) Next(date time.Time) time.Time {
	switch iv {
	case Week:
		return date.AddDate(0, 0, 7)
	case Month:
		return date.AddDate(0, 1, 0)
	case Quarter:
		return date.AddDate(0, 3, 0)
	default:
		return date.AddDate(0, 0, 1)
	}
}

func quarterOf(date time.Time) int {
	return (int(date.Month())-1)/3 + 1
}

func startOfISOWeek(date time.Time) time.Time {
	d := dateOnly(date)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday's week
	}
	return d.AddDate(0, 0, 1-weekday)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

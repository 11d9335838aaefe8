package visit

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tundavala/escola/core"
)

const (
	openingHour = 8
	closingHour = 17 // exclusive

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	NowFunc = time.Now // mockable

	ErrInvalidDateTime = errors.New("invalid visit date or time")
	ErrNotInFuture     = errors.New("visit date must be in the future")
	ErrWeekend         = errors.New("visits are only available from Monday to Friday")
	ErrOutsideHours    = errors.New("visits are only available between 08:00 and 17:00")
)

// ParseVisitTime combines a calendar date (YYYY-MM-DD) and a time (HH:MM) into a point in time in `loc`.
func ParseVisitTime(date, clock string, loc *time.Location) (time.Time, error) {
	at, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, core.NewValidationError(ErrInvalidDateTime)
	}
	return at, nil
}

// CheckVisitTime applies the visiting rules to `at`: strictly after `now`, Monday to Friday, from 08:00 until 17:00.
// Weekday and hour are read in the location of `at`.
func CheckVisitTime(at, now time.Time) error {
	if !at.After(now) {
		return core.NewValidationError(ErrNotInFuture)
	}
	switch at.Weekday() {
	case time.Saturday, time.Sunday:
		return core.NewValidationError(ErrWeekend)
	}
	if hour := at.Hour(); hour < openingHour || hour >= closingHour {
		return core.NewValidationError(ErrOutsideHours)
	}
	return nil
}

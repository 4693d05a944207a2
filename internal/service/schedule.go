package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadarssy/backend-finances/internal/models"
)

var weekdays = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// lastDayOfMonth returns the number of days in the given month.
func lastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextRunAt advances a schedule from the given date:
//
//	DAILY    next day
//	WEEKLY   next occurrence of the named weekday, strictly after from
//	MONTHLY  same day-of-month next month, clamped to the month's last day
//	YEARLY   same "MM-DD" (or day in the current month) next year, clamped
//
// The result is normalized to midnight in from's location.
func NextRunAt(scheduleType, scheduleValue string, from time.Time) (time.Time, error) {
	switch scheduleType {
	case models.ScheduleDaily:
		return midnight(from.AddDate(0, 0, 1)), nil

	case models.ScheduleWeekly:
		target, ok := weekdays[strings.ToUpper(scheduleValue)]
		if !ok {
			return time.Time{}, fmt.Errorf("invalid day value: %s", scheduleValue)
		}
		days := int(target) - int(from.Weekday())
		if days <= 0 {
			days += 7
		}
		return midnight(from.AddDate(0, 0, days)), nil

	case models.ScheduleMonthly:
		day, err := strconv.Atoi(scheduleValue)
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("invalid day of month: %s", scheduleValue)
		}
		// first of next month, then clamp the requested day
		first := time.Date(from.Year(), from.Month()+1, 1, 0, 0, 0, 0, from.Location())
		last := lastDayOfMonth(first.Year(), first.Month())
		if day > last {
			day = last
		}
		return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, from.Location()), nil

	case models.ScheduleYearly:
		var month time.Month
		var day int
		if strings.Contains(scheduleValue, "-") {
			parts := strings.SplitN(scheduleValue, "-", 2)
			m, errM := strconv.Atoi(parts[0])
			d, errD := strconv.Atoi(parts[1])
			if errM != nil || errD != nil || m < 1 || m > 12 || d < 1 || d > 31 {
				return time.Time{}, fmt.Errorf("invalid date value: %s", scheduleValue)
			}
			month = time.Month(m)
			day = d
		} else {
			d, err := strconv.Atoi(scheduleValue)
			if err != nil || d < 1 || d > 31 {
				return time.Time{}, fmt.Errorf("invalid date value: %s", scheduleValue)
			}
			month = from.Month()
			day = d
		}
		year := from.Year() + 1
		if last := lastDayOfMonth(year, month); day > last {
			day = last
		}
		return time.Date(year, month, day, 0, 0, 0, 0, from.Location()), nil
	}

	return time.Time{}, fmt.Errorf("unsupported schedule type: %s", scheduleType)
}

// ValidateScheduleValue reports whether the value parses for the type.
func ValidateScheduleValue(scheduleType, scheduleValue string) bool {
	switch scheduleType {
	case models.ScheduleDaily:
		return true
	case models.ScheduleWeekly:
		_, ok := weekdays[strings.ToUpper(scheduleValue)]
		return ok
	case models.ScheduleMonthly:
		day, err := strconv.Atoi(scheduleValue)
		return err == nil && day >= 1 && day <= 31
	case models.ScheduleYearly:
		if strings.Contains(scheduleValue, "-") {
			parts := strings.SplitN(scheduleValue, "-", 2)
			m, errM := strconv.Atoi(parts[0])
			d, errD := strconv.Atoi(parts[1])
			return errM == nil && errD == nil && m >= 1 && m <= 12 && d >= 1 && d <= 31
		}
		day, err := strconv.Atoi(scheduleValue)
		return err == nil && day >= 1 && day <= 31
	}
	return false
}

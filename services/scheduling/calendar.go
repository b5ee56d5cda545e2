package scheduling

import (
	"fmt"
	"time"

	"medicore/models"
)

// weekdayName resolves the weekday key used in Doctor.WeeklyVisitingHours.
func weekdayName(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.Weekday().String(), nil
}

// IsAvailableWeekday reports whether the doctor's recurring schedule marks the
// date's weekday as available with at least one window configured.
func IsAvailableWeekday(doctor models.Doctor, date string) bool {
	day, err := weekdayName(date)
	if err != nil {
		return false
	}
	sched, ok := doctor.WeeklyVisitingHours[day]
	return ok && sched.IsAvailable && len(sched.Windows) > 0
}

// IsBlocked reports whether the date falls inside one of the doctor's
// explicitly blocked date ranges (inclusive on both ends). Kept separate from
// IsAvailableWeekday so callers can tell "off that weekday" apart from
// "blocked this date" when messaging the user.
func IsBlocked(doctor models.Doctor, date string) bool {
	for _, r := range doctor.BlockedDates {
		// ISO dates compare correctly as strings.
		if date >= r.From && date <= r.To {
			return true
		}
	}
	return false
}

// BlockReason returns the reason attached to the blocking range, if any.
func BlockReason(doctor models.Doctor, date string) string {
	for _, r := range doctor.BlockedDates {
		if date >= r.From && date <= r.To {
			return r.Reason
		}
	}
	return ""
}

// SlotsForDay derives the ordered discrete slot start times for one
// doctor-day. Empty when the doctor is off that weekday or the date is
// blocked. Within each window, slots step by the doctor's granularity from
// the window start and stop strictly before the window end; windows are
// assumed non-overlapping and emitted in declaration order.
func SlotsForDay(doctor models.Doctor, date string) ([]string, error) {
	day, err := weekdayName(date)
	if err != nil {
		return nil, err
	}

	sched, ok := doctor.WeeklyVisitingHours[day]
	if !ok || !sched.IsAvailable {
		return nil, nil
	}
	if IsBlocked(doctor, date) {
		return nil, nil
	}

	step := doctor.Granularity()
	var slots []string
	for _, w := range sched.Windows {
		start, err := NormalizeTime(w.Start)
		if err != nil {
			return nil, fmt.Errorf("doctor %s has malformed window start %q: %w", doctor.ID, w.Start, err)
		}
		end, err := NormalizeTime(w.End)
		if err != nil {
			return nil, fmt.Errorf("doctor %s has malformed window end %q: %w", doctor.ID, w.End, err)
		}
		for m := minutesOfDay(start); m < minutesOfDay(end); m += step {
			slots = append(slots, clockString(m))
		}
	}
	return slots, nil
}

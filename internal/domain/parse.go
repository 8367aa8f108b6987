package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadTime  = errors.New("invalid meal time")
	ErrBadDelay = errors.New("invalid delay")
)

// ParseMealTime parses "HH:MM" into a MealTime. The string must split into
// exactly two integer parts with hour in [0,24) and minute in [0,60).
func ParseMealTime(s string) (MealTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return MealTime{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return MealTime{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return MealTime{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return MealTime{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return MealTime{Hour: h, Minute: m}, nil
}

// ParseDelayMinutes parses the reminder delay as a non-negative integer
// number of minutes.
func ParseDelayMinutes(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDelay, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadDelay, n)
	}
	return n, nil
}

// ReminderAt computes the reminder instant: now's calendar date at the meal
// time, seconds zeroed, plus the delay. The result may be in the past when
// the reported meal time already passed today; such an instant is returned
// as-is and fires near-immediately.
func ReminderAt(now time.Time, mt MealTime, delayMinutes int) time.Time {
	meal := time.Date(now.Year(), now.Month(), now.Day(), mt.Hour, mt.Minute, 0, 0, now.Location())
	return meal.Add(time.Duration(delayMinutes) * time.Minute)
}

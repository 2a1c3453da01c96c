package dto

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClock = errors.New("time must use the HH:MM format")

// ParseClock reads a 24h wall-clock time ("09:30" or "09:30:00") as an offset from midnight.
func ParseClock(value string) (time.Duration, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, ErrInvalidClock
}

// FormatClock renders an offset from midnight as HH:MM, adding :SS only when needed.
func FormatClock(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kmuchiri/jikoni-orders/utils"
)

// OrderingWindow decides whether order submission is still permitted today.
// The closing time is an "HH:mm" string evaluated against the current wall
// clock on every call; nothing is cached, since "now" keeps moving.
type OrderingWindow struct {
	Now func() time.Time
}

func NewOrderingWindow() *OrderingWindow {
	return &OrderingWindow{Now: time.Now}
}

// Open reports whether the current instant is before today's cutoff. A
// malformed closing value is logged and treated as an open window so a bad
// setting never locks customers out.
func (w *OrderingWindow) Open(closing string) bool {
	now := w.Now()
	cutoff, err := cutoffFor(closing, now)
	if err != nil {
		utils.ErrorLogger.Printf("invalid order closing time %q: %v", closing, err)
		return true
	}
	return now.Before(cutoff)
}

// cutoffFor builds the closing instant for the calendar day of ref.
func cutoffFor(closing string, ref time.Time) (time.Time, error) {
	parts := strings.Split(closing, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("expected HH:mm")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute %q", parts[1])
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(), hour, minute, 0, 0, ref.Location()), nil
}

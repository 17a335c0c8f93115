package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber returns ORD-YYYYMMDD-HHMMSS-NNNN for the given instant.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s-%04d",
		now.Format("20060102"),
		now.Format("150405"),
		rand.Intn(10000),
	)
}

// DefaultShowTime is tomorrow at 20:00 in now's location.
func DefaultShowTime(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 20, 0, 0, 0, now.Location())
}

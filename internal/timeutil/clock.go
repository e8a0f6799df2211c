package timeutil

import (
	"os"
	"time"
)

// storeZone is the timezone rental and payment timestamps are displayed in.
// Rows are stored as timestamptz; this only affects formatting.
var storeZone *time.Location

func init() {
	name := os.Getenv("STORE_TIMEZONE")
	if name == "" {
		name = "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	storeZone = loc
}

// Now returns the current time in the store's timezone.
func Now() time.Time {
	return time.Now().In(storeZone)
}

// ToStore converts any time to the store's timezone.
func ToStore(t time.Time) time.Time {
	return t.In(storeZone)
}

// FormatStore formats a time in the store's timezone using the given layout.
func FormatStore(t time.Time, layout string) string {
	return t.In(storeZone).Format(layout)
}

// Common layouts for display formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)

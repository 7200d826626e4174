/*
Package format provides convenience functions for formatting.
*/
package format

import (
	"time"
)

// Duration is similar to the time.Duration.String method from the standard
// library but is more readable and shows only 3 digits of precision when
// duration is less than 1 minute.
func Duration(duration time.Duration) string {
	return formatDuration(duration)
}

// FormatBytes returns a string with the number of bytes specified converted
// into a human-friendly format with a binary multiplier (i.e. GiB).
func FormatBytes(bytes uint64) string {
	return formatBytes(bytes)
}

// GetMultiplier will return the preferred base-2 multiplier (i.e. Ki, Mi, Gi)
// and right shift number for the specified value.
func GetMultiplier(value uint64) (uint, string) {
	return getMultiplier(value)
}

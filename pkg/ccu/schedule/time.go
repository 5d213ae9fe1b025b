package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime converts an HH:MM string to minutes since midnight. Hours run
// from 0 to 24, but 24 is only valid as 24:00, the end-of-day boundary.
// A single-digit hour such as "5:00" is accepted.
func ParseTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format %q (expected HH:MM)", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q (expected HH:MM)", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q (expected HH:MM)", s)
	}

	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if hours == 24 && minutes > 0 {
		return 0, fmt.Errorf("invalid time %q (use 24:00 for end of day)", s)
	}

	return hours*60 + minutes, nil
}

// FormatTime converts minutes since midnight to a zero-padded HH:MM string.
func FormatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

package config

import (
	"strconv"
	"time"
)

// ParseDuration parses a duration string, extending the standard Go
// syntax with a day unit: "7d" is 7*24h. Anything that is not a plain
// integer followed by s, m, h, or d falls through to time.ParseDuration.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) >= 2 {
		if value, err := strconv.Atoi(s[:len(s)-1]); err == nil {
			switch s[len(s)-1] {
			case 's':
				return time.Duration(value) * time.Second, nil
			case 'm':
				return time.Duration(value) * time.Minute, nil
			case 'h':
				return time.Duration(value) * time.Hour, nil
			case 'd':
				return time.Duration(value) * 24 * time.Hour, nil
			}
		}
	}

	return time.ParseDuration(s)
}

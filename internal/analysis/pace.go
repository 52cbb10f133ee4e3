package analysis

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned for malformed time or pace strings
var ErrInvalidDuration = errors.New("invalid duration")

// FormatPace formats a speed (m/s) as a "mm:ss" min/km pace. Seconds are
// rounded before being split so 359.6 s/km shows as 06:00, not 05:60.
func FormatPace(speed float64) string {
	if speed <= 0 {
		return "-"
	}
	secPerKm := int(math.Round(1000 / speed))
	return fmt.Sprintf("%02d:%02d", secPerKm/60, secPerKm%60)
}

// FormatPaceValue formats a Pace the same way as FormatPace
func FormatPaceValue(p Pace) string {
	if !p.Valid {
		return "-"
	}
	return FormatPace(1000 / (p.MinutesPerKm * 60))
}

// ParsePace parses a "mm:ss" min/km pace into a speed in m/s
func ParsePace(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: pace %q must be mm:ss", ErrInvalidDuration, s)
	}
	fields, err := parseFields(parts)
	if err != nil {
		return 0, fmt.Errorf("%w: pace %q: %v", ErrInvalidDuration, s, err)
	}
	total := fields[0]*60 + fields[1]
	if total == 0 {
		return 0, fmt.Errorf("%w: pace %q is zero", ErrInvalidDuration, s)
	}
	return 1000 / float64(total), nil
}

// FormatDuration formats seconds as "hh:mm:ss"
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "-"
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseDuration parses "hh:mm:ss" into seconds
func ParseDuration(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q must be hh:mm:ss", ErrInvalidDuration, s)
	}
	fields, err := parseFields(parts)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidDuration, s, err)
	}
	return float64(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

func parseFields(parts []string) ([]int, error) {
	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("field %q is not a number", p)
		}
		if n < 0 {
			return nil, fmt.Errorf("field %q is negative", p)
		}
		fields[i] = n
	}
	return fields, nil
}

package util

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts "MM:SS" or "HH:MM:SS" to seconds. Any other field
// count yields 0 with no error so callers can proceed best-effort, while a
// non-numeric field returns an error so callers can discard the enclosing
// record.
func ParseTimestamp(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 2:
		m, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, err
		}
		sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, err
		}
		return float64(m*60 + sec), nil
	case 3:
		h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return 0, err
		}
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, err
		}
		sec, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return 0, err
		}
		return float64(h*3600 + m*60 + sec), nil
	default:
		return 0, nil
	}
}

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS past the hour mark.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return pad(h) + ":" + pad(m) + ":" + pad(s)
	}
	return pad(m) + ":" + pad(s)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

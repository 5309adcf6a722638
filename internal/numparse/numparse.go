// Package numparse converts the leading numeric prefix of a text cell.
//
// Dataset cells are converted leniently: whatever prefix looks like a number is
// used and the rest is ignored, and a cell with no numeric prefix converts to
// zero. The second return value reports whether the whole cell (after
// surrounding spaces) was consumed, so callers can warn about lossy cells.
package numparse

import (
	"math"
	"strconv"
	"strings"
)

// FloatPrefix returns the longest prefix of s (after leading white space)
// that parses as a decimal floating-point number, "inf"/"infinity" or "nan".
// It returns "" when s has no numeric prefix.
func FloatPrefix(s string) string {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	lower := strings.ToLower(s[i:])
	for _, word := range []string{"infinity", "inf", "nan"} {
		if strings.HasPrefix(lower, word) {
			return s[:i+len(word)]
		}
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}

	// Exponent only counts when at least one digit follows.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i]
}

// Float32 converts the numeric prefix of s to a float32. Values beyond the
// float32 range saturate to ±Inf.
func Float32(s string) (float32, bool) {
	prefix := FloatPrefix(s)
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 32)
	if err != nil && !isRangeErr(err) {
		return 0, false
	}
	return float32(v), prefix == strings.TrimSpace(s)
}

// Int32 converts the leading optionally-signed digit run of s to an int32,
// clamping values outside the int32 range.
func Int32(s string) (int32, bool) {
	t := strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	neg := false
	if i < len(t) && (t[i] == '+' || t[i] == '-') {
		neg = t[i] == '-'
		i++
	}
	start := i
	var n int64
	for i < len(t) && isDigit(t[i]) {
		if n <= math.MaxInt32+1 {
			n = n*10 + int64(t[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, false
	}
	if neg {
		n = -n
	}
	switch {
	case n > math.MaxInt32:
		n = math.MaxInt32
	case n < math.MinInt32:
		n = math.MinInt32
	}
	return int32(n), t[:i] == strings.TrimSpace(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

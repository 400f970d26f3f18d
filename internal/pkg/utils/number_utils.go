package utils

import (
	"math"
	"strconv"
	"strings"
)

// FormatUSD renders an optional dollar amount rounded to whole units with
// thousands separators. Example: 1234567.8 => "1,234,568". Nil renders as "n/a".
func FormatUSD(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "n/a"
	}
	return GroupThousands(int64(math.Round(*v)))
}

// GroupThousands inserts comma separators into an integer.
func GroupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatScore prints a score with at most two decimals and no trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func FormatNumber(n int64) string {
	str := strconv.FormatInt(n, 10)
	if n < 0 {
		str = str[1:]
	}

	var b strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if n < 0 {
		return "-" + b.String()
	}
	return b.String()
}

// ProgressBar renders current/total as a bar of length cells.
func ProgressBar(current, total int64, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("█", length) + "]"
	}
	filled := int(current * int64(length) / total)
	filled = max(0, min(filled, length))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

// FormatRemaining renders a cooldown as "4m 12s", rounding up to whole seconds.
func FormatRemaining(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

// FormatUntil renders the time left until a reset as "5h 3m".
func FormatUntil(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

package util

import (
	"fmt"
	"time"
)

// ShortDuration renders d at its two most significant units, eg "1m 5s".
func ShortDuration(d time.Duration) string {
	units := []struct {
		size time.Duration
		name string
	}{
		{24 * time.Hour, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
		{time.Millisecond, "ms"},
	}
	for i, u := range units {
		if d < u.size {
			continue
		}
		major := d / u.size
		out := fmt.Sprintf("%d%s", major, u.name)
		if i+1 < len(units) && u.size > time.Second {
			minor := (d - major*u.size) / units[i+1].size
			if minor > 0 {
				out += fmt.Sprintf(" %d%s", minor, units[i+1].name)
			}
		}
		return out
	}
	return "0s"
}

// ByteSize renders n bytes in binary units, eg "1.5MiB".
func ByteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

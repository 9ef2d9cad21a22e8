package pretty

import (
	"fmt"
	"math"
	"strings"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// Bar renders a horizontal bar width cells wide, filled to percent (0-100).
// Any non-zero percent fills at least one cell.
func (s *Styles) Bar(percent float64, width int, hex string) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(percent / 100 * float64(width)))
	switch {
	case filled > width:
		filled = width
	case filled == 0 && percent > 0:
		filled = 1
	case filled < 0:
		filled = 0
	}

	return s.LanguageColor(hex).Render(strings.Repeat(barFull, filled)) +
		s.Dim.Render(strings.Repeat(barEmpty, width-filled))
}

// Unit names for FormatBytes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders n with a binary unit suffix, e.g. "12.3 KiB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}

// FormatCount renders n with thousands separators, e.g. "12,345".
func FormatCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprint(n)
	var b strings.Builder
	b.WriteString(sign)
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

package transcript

import (
	"fmt"
	"strings"
	"time"
)

// FormatLines renders segments as "HH:MM:SS text" lines, one per
// segment, in cue order.
func FormatLines(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(formatTimestamp(seg.Start))
		sb.WriteByte(' ')
		sb.WriteString(strings.TrimSpace(seg.Text))
	}
	return sb.String()
}

func formatTimestamp(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

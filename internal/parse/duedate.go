package parse

import (
	"strings"
	"time"
)

// The portal renders deadlines like "25 September 2025-11:00 pm", with a
// hyphen between the date and the time and an occasional abbreviated
// month or missing time.
var deadlineLayouts = []string{
	"2 January 2006 3:04 pm",
	"2 Jan 2006 3:04 pm",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDeadline parses the portal's deadline text in local time. It
// returns nil when the text matches none of the known layouts; callers
// keep the record and categorize it Unknown.
func ParseDeadline(text string) *time.Time {
	s := strings.Join(strings.Fields(strings.ReplaceAll(text, "-", " ")), " ")
	if s == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t
		}
	}
	return nil
}

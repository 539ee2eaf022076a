package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline_PortalFormats(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"25 September 2025-11:00 pm", time.Date(2025, 9, 25, 23, 0, 0, 0, time.Local)},
		{"25 Sep 2025-11:00 pm", time.Date(2025, 9, 25, 23, 0, 0, 0, time.Local)},
		{"3 March 2026-9:05 am", time.Date(2026, 3, 3, 9, 5, 0, 0, time.Local)},
		{"25 September 2025", time.Date(2025, 9, 25, 0, 0, 0, 0, time.Local)},
		{"25 Sep 2025", time.Date(2025, 9, 25, 0, 0, 0, 0, time.Local)},
		{"  25 September 2025 - 11:00 pm  ", time.Date(2025, 9, 25, 23, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseDeadline(tt.text)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseDeadline_Unparseable(t *testing.T) {
	for _, text := range []string{"", "   ", "TBA", "2025-09-25T23:00:00Z", "next friday"} {
		assert.Nil(t, ParseDeadline(text), "expected nil for %q", text)
	}
}

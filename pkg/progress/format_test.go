package progress

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/ytchannel-go/internal/domain"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{2048 * 1024 * 1024 * 1024, "2048.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.bytes))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	twoDecimals := regexp.MustCompile(`^\d+\.\d{2}%$`)

	assert.Equal(t, "Done", FormatPercent(domain.ProgressState{Received: 100, Total: 100}))
	assert.Equal(t, "50.00%", FormatPercent(domain.ProgressState{Received: 50, Total: 100}))
	assert.Regexp(t, twoDecimals, FormatPercent(domain.ProgressState{Received: 1, Total: 3}))
	assert.Equal(t, "0.00%", FormatPercent(domain.ProgressState{Received: 0, Total: 100}))

	assert.Empty(t, FormatPercent(domain.ProgressState{Received: 100, Total: 0}))
	assert.Empty(t, FormatPercent(domain.ProgressState{Received: 100, Total: -1}))
}

func TestRenderLine(t *testing.T) {
	line := RenderLine(domain.TrackAudio, domain.ProgressState{Received: 512, Total: 2048})
	assert.Equal(t, "\tAudio progression: 25.00% of 2.00 KB", line)

	line = RenderLine(domain.TrackVideo, domain.ProgressState{Received: 2048, Total: 2048})
	assert.Equal(t, "\tVideo progression: Done of 2.00 KB", line)

	assert.Empty(t, RenderLine(domain.TrackVideo, domain.ProgressState{Received: 10}))
}

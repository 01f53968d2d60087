package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{734003200, "700.0 MiB"},
		{5046586572, "4.7 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.bytes), "%d bytes", tt.bytes)
	}
}

func TestFormatBitrateLabel(t *testing.T) {
	assert.Equal(t, "800 kbps", FormatBitrateLabel(800))
	assert.Equal(t, "1.0 Mbps", FormatBitrateLabel(1000))
	assert.Equal(t, "5.0 Mbps", FormatBitrateLabel(5000))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "unknown", FormatDuration(0))
	assert.Equal(t, "0:45", FormatDuration(45))
	assert.Equal(t, "10:00", FormatDuration(600))
	assert.Equal(t, "1:37:05", FormatDuration(5825))
	assert.Equal(t, "23:57", FormatDuration(1437.123))
}

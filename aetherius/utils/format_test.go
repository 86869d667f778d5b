package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12500, "12,500"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░░░░░░░]", ProgressBar(0, 300, 10))
	assert.Equal(t, "[███░░░░░░░]", ProgressBar(99, 300, 10))
	assert.Equal(t, "[██████████]", ProgressBar(300, 300, 10))
	assert.Equal(t, "[██████████]", ProgressBar(500, 300, 10))
	assert.Equal(t, "[██████████]", ProgressBar(1, 0, 10))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "1s", FormatRemaining(200*time.Millisecond))
	assert.Equal(t, "59s", FormatRemaining(59*time.Second))
	assert.Equal(t, "4m 12s", FormatRemaining(4*time.Minute+12*time.Second))
}

func TestFormatUntil(t *testing.T) {
	assert.Equal(t, "42m", FormatUntil(42*time.Minute))
	assert.Equal(t, "5h 3m", FormatUntil(5*time.Hour+3*time.Minute+10*time.Second))
}

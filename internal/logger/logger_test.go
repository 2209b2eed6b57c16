package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
	}
	for level, want := range tests {
		for _, format := range []string{"json", "console"} {
			l, err := New(level, format)
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(want), "%s/%s", level, format)
			if want > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(want-1), "%s/%s", level, format)
			}
		}
	}
}

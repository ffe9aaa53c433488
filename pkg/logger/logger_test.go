package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildConfigByEnvironment(t *testing.T) {
	tests := []struct {
		env       string
		wantLevel zap.AtomicLevel
		wantJSON  bool
	}{
		{env: "production", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel), wantJSON: true},
		{env: " DEBUG ", wantLevel: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{env: "development", wantLevel: zap.NewAtomicLevelAt(zap.InfoLevel)},
	}

	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			cfg := buildConfig(tc.env)
			require.Equal(t, tc.wantLevel.Level(), cfg.Level.Level())
			require.Equal(t, tc.wantJSON, cfg.Encoding == "json")
			require.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
			require.True(t, cfg.DisableStacktrace)
		})
	}
}

func TestNewAndNop(t *testing.T) {
	l, err := New("leadrelay", "production")
	require.NoError(t, err)
	l.Named("test").Infow("startup", "component", "logger")
	l.SafeSync()

	Nop().Errorw("discarded", "k", "v")
}

func TestIsIgnorableSyncError(t *testing.T) {
	require.True(t, isIgnorableSyncError(errors.New("sync /dev/stdout: invalid argument")))
	require.False(t, isIgnorableSyncError(errors.New("disk full")))
}

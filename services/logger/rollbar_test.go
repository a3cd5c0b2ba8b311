package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davalosk/ezu/core"
	"github.com/davalosk/ezu/core/user"
)

func newObservedLogger(t *testing.T) (*RollbarLogger, *observer.ObservedLogs) {
	t.Helper()
	obsCore, logs := observer.New(zapcore.DebugLevel)
	l := NewRollbarLogger(zap.New(obsCore), &core.Config{Env: "TEST", Debug: true})
	return l, logs
}

func TestRollbarLogger_fields(t *testing.T) {
	l, logs := newObservedLogger(t)

	usr := user.User{ID: "u1", Username: "awe", Email: "awe@test.cd"}
	l.Error("creating section", errors.New("boom"), usr, map[string]interface{}{"section": "001"})
	l.Info("migrated")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "creating section", entries[0].Message)
	assert.Equal(t, "boom", ctx["error"])
	assert.Equal(t, "awe", ctx["user"])
	assert.Equal(t, "001", ctx["section"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Empty(t, entries[1].ContextMap())
}

func TestNewZapLogger(t *testing.T) {
	tests := []struct {
		name    string
		conf    core.LogConfig
		wantErr bool
	}{
		{name: "console", conf: core.LogConfig{Level: "debug", Format: "console"}},
		{name: "json", conf: core.LogConfig{Level: "warn", Format: "json"}},
		{name: "bad level", conf: core.LogConfig{Level: "loud", Format: "json"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, err := NewZapLogger(tt.conf)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewZapLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && zl == nil {
				t.Error("NewZapLogger() returned a nil logger")
			}
		})
	}
}

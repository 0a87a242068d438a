package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_IsNop(t *testing.T) {
	l := New()
	if l.Log == nil {
		t.Fatal("Log must not be nil")
	}
	if l.Log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("New() logger should discard everything")
	}
}

func TestInit(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
		enabled zapcore.Level
	}{
		{"Info", false, zapcore.InfoLevel},
		{"debug", false, zapcore.DebugLevel},
		{"warn", false, zapcore.WarnLevel},
		{"loud", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			err := l.Init(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Init(%q) error = %v; wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !l.Log.Core().Enabled(tt.enabled) {
				t.Errorf("level %v not enabled after Init(%q)", tt.enabled, tt.level)
			}
			if tt.enabled > zapcore.DebugLevel && l.Log.Core().Enabled(tt.enabled-1) {
				t.Errorf("level below %v enabled after Init(%q)", tt.enabled, tt.level)
			}
		})
	}
}

package log

import (
	"context"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name string
		cfg  ZapConfig
	}{
		{name: "console debug", cfg: ZapConfig{Level: "debug", Mode: "debug", Encoding: "console", ColorEnabled: true}},
		{name: "json production", cfg: ZapConfig{Level: "warn", Mode: ModeProduction, Encoding: EncodingJSON}},
		{name: "unknown level", cfg: ZapConfig{Level: "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Init(tt.cfg)
			if l == nil {
				t.Fatal("expected logger")
			}
			l.Debugf(context.Background(), "debug %d", 1)
		})
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Infof(context.Background(), "discarded %s", "message")
	l.Error(context.Background(), "discarded")
}

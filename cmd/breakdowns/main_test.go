package main

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetupLogging_DebugOverridesLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := setupLogging("error", true, &buf)
	logger.Debug("breakdown detected", "detector", "System failure")

	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"breakdown detected"`)) {
		t.Errorf("expected debug record in JSON output, got %q", buf.String())
	}
}

func TestSetupLogging_RespectsLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := setupLogging("warn", false, &buf)
	logger.Info("inputs loaded")

	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}
}

func TestDetectCommandFlags(t *testing.T) {
	for _, name := range []string{"output-file", "breakdown-components", "pattern-size", "workers", "deaf-threshold"} {
		if detectCmd.Flags().Lookup(name) == nil {
			t.Errorf("detect command is missing --%s", name)
		}
	}
	if f := detectCmd.Flags().ShorthandLookup("n"); f == nil || f.Name != "pattern-size" {
		t.Error("expected -n to be the pattern-size shorthand")
	}
	if rootCmd.PersistentFlags().Lookup("debug") == nil {
		t.Error("root command is missing --debug")
	}
}

func TestDetectCommandRequiresTwoArgs(t *testing.T) {
	if err := detectCmd.Args(detectCmd, []string{"dialogues.json"}); err == nil {
		t.Error("expected an error for a missing dialogue flow argument")
	}
	if err := detectCmd.Args(detectCmd, []string{"dialogues.json", "flow.json"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

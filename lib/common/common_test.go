package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

// TestParseLogLevel tests the accepted log level names
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    logger.LogLevel
		wantErr bool
	}{
		{input: "debug", want: logger.DEBUG},
		{input: "INFO", want: logger.INFO},
		{input: "warn", want: logger.WARNING},
		{input: "warning", want: logger.WARNING},
		{input: "error", want: logger.ERROR},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestLoggerLevels tests that messages below the configured level are dropped
func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	prev := logOutput
	logOutput = &buf
	defer func() { logOutput = prev }()

	l := CreateLogger("test")
	l.SetLevel(logger.WARNING)
	l.Infof("hidden %d", 1)
	l.Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warning level: %q", out)
	}
	if !strings.Contains(out, "WARN  | test") || !strings.Contains(out, "shown 2") {
		t.Errorf("unexpected log output: %q", out)
	}
}

// TestLoggerPanicf tests that Panicf logs and panics unless the logger is set below critical
func TestLoggerPanicf(t *testing.T) {
	var buf bytes.Buffer
	prev := logOutput
	logOutput = &buf
	defer func() { logOutput = prev }()

	panics := func(l logger.ILogger) (panicked bool) {
		defer func() { panicked = recover() != nil }()
		l.Panicf("broken %s", "invariant")
		return false
	}

	l := CreateLogger("test")
	l.SetLevel(logger.ERROR)
	if !panics(l) {
		t.Errorf("Panicf did not panic at error level")
	}
	if !strings.Contains(buf.String(), "CRIT  | test") || !strings.Contains(buf.String(), "broken invariant") {
		t.Errorf("unexpected log output: %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(logger.CRITICAL - 1)
	if panics(l) {
		t.Errorf("Panicf panicked below critical level")
	}
	if buf.Len() != 0 {
		t.Errorf("Panicf logged below critical level: %q", buf.String())
	}
}

// TestConfigValidate tests configuration validation
func TestConfigValidate(t *testing.T) {
	valid := Config{InputPath: "in.json", OutputPath: "-", LogLevel: "info"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid config failed: %v", err)
	}
	if !strings.Contains(valid.String(), "in.json") {
		t.Errorf("String() does not mention the input: %s", valid.String())
	}

	for name, c := range map[string]Config{
		"no input":      {OutputPath: "-", LogLevel: "info"},
		"no output":     {InputPath: "-", LogLevel: "info"},
		"bad log level": {InputPath: "-", OutputPath: "-", LogLevel: "loud"},
	} {
		if err := c.Validate(); err == nil {
			t.Errorf("%s: Validate() succeeded", name)
		}
	}
}

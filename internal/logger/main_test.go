package logger_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/logger"
)

// captureStdout runs fn while stdout is redirected into a buffer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)

	return buf.String()
}

func TestInit(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutput bool
		outputIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutput: false,
		},
		{
			name: "console enabled log level info",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutput: true,
		},
		{
			name: "console enabled console writer disabled expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutput: true,
			outputIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureStdout(t, func() {
				if err := logger.Init(tc.cfg); err != nil {
					t.Errorf("Init() error = %v", err)
					return
				}

				log.Info().Msg("test message")
			})

			if tc.shouldHaveOutput && out == "" {
				t.Error("expected log output, got none")
			}

			if !tc.shouldHaveOutput && out != "" {
				t.Errorf("expected no log output, got %q", out)
			}

			if tc.outputIsJSON {
				var decoded map[string]any
				if err := json.Unmarshal([]byte(out), &decoded); err != nil {
					t.Errorf("output is not valid json: %v", err)
				}
			}
		})
	}
}

func TestInit_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  logger.Log
	}{
		{"unsupported level", logger.Log{LogLevel: "chatty", ServiceName: "s", AppName: "a"}},
		{"empty service name", logger.Log{LogLevel: "info", AppName: "a"}},
		{"empty app name", logger.Log{LogLevel: "info", ServiceName: "s"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := logger.Init(tc.cfg); err == nil {
				t.Error("Init() should fail")
			}
		})
	}
}

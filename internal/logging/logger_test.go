package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/calder-ross/pagemd/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(testCase.level); got != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	if logger == nil {
		t.Fatal("New returned nil logger")
	}
	if logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", logger.GetLevel())
	}
}

func TestNewAtWritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewAt(&buf, "info")

	logger.Info("written", logging.FieldPath, "out/page.md")

	out := buf.String()
	if !strings.Contains(out, "written") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "out/page.md") {
		t.Errorf("expected field value in output, got %q", out)
	}
}

func TestNewAtSuppressesBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewAt(&buf, "error")

	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("info should be suppressed at error level, got %q", buf.String())
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	if logging.Default() == nil {
		t.Fatal("Default returned nil logger")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.

	// Save original and restore after test.
	original := logging.Default()
	defer logging.SetDefault(original)

	testLogger := logging.New("info")
	logging.SetDefault(testLogger)

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.

	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	//nolint:staticcheck // Explicitly exercising the nil-context guard.
	if logging.FromContext(nil) == nil {
		t.Fatal("FromContext(nil) returned nil")
	}

	if logging.FromContext(context.Background()) != logging.Default() {
		t.Error("FromContext without a logger should return the default")
	}

	custom := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), custom)
	if logging.FromContext(ctx) != custom {
		t.Error("FromContext did not return the attached logger")
	}
}

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit_CreatesFile(t *testing.T) {
	resetLogger()

	tmpFile := filepath.Join(t.TempDir(), "test.log")
	if err := Init(tmpFile, log.InfoLevel); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, err := os.Stat(tmpFile); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestInit_FilePermissions(t *testing.T) {
	resetLogger()

	tmpFile := filepath.Join(t.TempDir(), "test.log")
	if err := Init(tmpFile, log.InfoLevel); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	info, err := os.Stat(tmpFile)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}
}

func TestInit_EmptyPath_DisablesLogging(t *testing.T) {
	resetLogger()

	if err := Init("", log.InfoLevel); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Enabled() {
		t.Error("logging should be disabled with empty path")
	}
}

func TestInit_BadPath(t *testing.T) {
	resetLogger()

	err := Init(filepath.Join(t.TempDir(), "missing", "dir", "test.log"), log.InfoLevel)
	if err == nil {
		t.Error("expected error for unwritable path")
	}
	if Enabled() {
		t.Error("logging should stay disabled after a failed Init")
	}
}

func TestInit_OnlyOnce(t *testing.T) {
	resetLogger()

	tmpFile1 := filepath.Join(t.TempDir(), "test1.log")
	tmpFile2 := filepath.Join(t.TempDir(), "test2.log")

	Init(tmpFile1, log.InfoLevel)
	Init(tmpFile2, log.InfoLevel) // ignored

	done := Op("Test")
	done(nil)

	content1, _ := os.ReadFile(tmpFile1)
	content2, _ := os.ReadFile(tmpFile2)

	if len(content1) == 0 {
		t.Error("first log file should have content")
	}
	if len(content2) > 0 {
		t.Error("second log file should be empty")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOp_Success(t *testing.T) {
	buf := setupTestLogger(t)

	done := Op("LoadSnapshot", "path", "demo.yaml")
	done(nil)

	output := buf.String()
	if !strings.Contains(output, "LoadSnapshot") {
		t.Error("log should contain operation name")
	}
	if !strings.Contains(output, "duration") {
		t.Error("log should contain duration")
	}
	if !strings.Contains(output, "demo.yaml") {
		t.Error("log should contain key-value pair")
	}
	if strings.Contains(output, "ERRO") {
		t.Error("success should not log at ERROR level")
	}
}

func TestOp_Error(t *testing.T) {
	buf := setupTestLogger(t)

	done := Op("ExportEntry")
	done(errors.New("disk full"))

	output := buf.String()
	if !strings.Contains(output, "ExportEntry") {
		t.Error("log should contain operation name")
	}
	if !strings.Contains(output, "disk full") {
		t.Error("log should contain error message")
	}
	if !strings.Contains(output, "ERRO") {
		t.Error("error should log at ERROR level")
	}
}

func TestOpWithResult_AddsResultInfo(t *testing.T) {
	buf := setupTestLogger(t)

	done := OpWithResult("TreeFromDir")
	done(nil, "nodes", 42)

	output := buf.String()
	if !strings.Contains(output, "nodes") || !strings.Contains(output, "42") {
		t.Error("log should contain result key-value")
	}
}

func TestLevelHelpers(t *testing.T) {
	buf := setupTestLogger(t)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(output, want) {
			t.Errorf("log should contain %q", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is to..."},
		{"", 10, ""},
	}

	for _, tc := range tests {
		if result := Truncate(tc.input, tc.maxLen); result != tc.expected {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.input, tc.maxLen, result, tc.expected)
		}
	}
}

func TestDisabledLogging(t *testing.T) {
	resetLogger()

	// None of these should panic.
	Op("TestOperation")(nil)
	Op("TestOperation")(errors.New("error"))
	OpWithResult("TestOperation")(nil, "key", "value")
	Info("ignored")
}

func TestSetLogger(t *testing.T) {
	resetLogger()

	buf := &bytes.Buffer{}
	SetLogger(log.NewWithOptions(buf, log.Options{
		Level:  log.DebugLevel,
		Prefix: "CUSTOM",
	}))

	if !Enabled() {
		t.Error("logging should be enabled after SetLogger")
	}

	Op("TestOp")(nil)

	if !strings.Contains(buf.String(), "CUSTOM") {
		t.Error("custom logger prefix should appear")
	}
}

func TestSetLogger_Nil(t *testing.T) {
	resetLogger()

	SetLogger(nil)

	if Enabled() {
		t.Error("logging should be disabled when SetLogger(nil)")
	}
	Op("TestOp")(nil)
}

func resetLogger() {
	loggerOnce = sync.Once{}
	logger = nil
	logEnabled = false
}

func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	resetLogger()

	buf := &bytes.Buffer{}
	logger = log.NewWithOptions(buf, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "repolens",
		ReportTimestamp: false,
	})
	logEnabled = true

	return buf
}

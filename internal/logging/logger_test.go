package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpersNoopBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	// Must not panic.
	Info("info")
	Debug("debug")
	Warn("warn")
	Error("error")
	if WithPrefix("x") != nil {
		t.Error("WithPrefix should return nil before Init")
	}
}

func TestInitWriterLevel(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	InitWriter(&buf, "warn")

	Info("hidden message")
	Warn("visible message", "topic", "Cybersecurity Threats")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "Cybersecurity Threats") {
		t.Errorf("expected warn line with keyvals, got %q", out)
	}
}

func TestInitWriterBadLevelDefaultsToInfo(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	InitWriter(&buf, "loud")
	Debug("debug line")
	Info("info line")

	if strings.Contains(buf.String(), "debug line") {
		t.Error("unknown level should fall back to info")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Error("info should be logged at default level")
	}
}

func TestInitCreatesDatedFile(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	dir := t.TempDir()
	if err := Init(dir, "debug"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Close()

	matches, err := filepath.Glob(filepath.Join(dir, "logs", "news-analyzer-*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one log file, got %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "news-analyzer started") {
		t.Errorf("log file missing startup line: %q", data)
	}
}

func TestCloseDetachesFileLogger(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	if err := Init(t.TempDir(), "info"); err != nil {
		t.Fatal(err)
	}
	Close()
	if Logger != nil {
		t.Error("Close should detach the logger from the closed file")
	}
	Info("after close") // must not panic
}

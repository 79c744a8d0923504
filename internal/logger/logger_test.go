package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	cases := []struct {
		level    string
		included []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}
	dir := t.TempDir()
	for _, c := range cases {
		path := filepath.Join(dir, c.level+".log")
		cfg := FileConfig{Path: path, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
		if err := InitWithFileConfig(c.level, cfg, false); err != nil {
			t.Fatal(err)
		}
		Debug("debug line")
		Info("info line")
		Warn("warn line")
		Error("error line")
		Sync()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		content := string(data)
		for _, want := range c.included {
			if !strings.Contains(content, want) {
				t.Fatalf("level %s should pass %s lines through", c.level, want)
			}
		}
		for _, reject := range c.excluded {
			if strings.Contains(content, reject) {
				t.Fatalf("level %s should filter %s lines out", c.level, reject)
			}
		}
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	cfg := FileConfig{Path: path, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1}
	if err := InitWithFileConfig("chatty", cfg, false); err != nil {
		t.Fatal(err)
	}
	Debug("debug line")
	Info("info line")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "DEBUG") {
		t.Fatal("unknown level should fall back to info, not debug")
	}
	if !strings.Contains(string(data), "INFO") {
		t.Fatal("unknown level should still log info lines")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/overlap.log")
	if cfg.Path != "/tmp/overlap.log" {
		t.Fatalf("path should pass through but got %q", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 5 || cfg.MaxAgeDays != 14 {
		t.Fatalf("rotation defaults changed: %+v", cfg)
	}
	if !cfg.Compress {
		t.Fatal("rotated files should be compressed by default")
	}
}

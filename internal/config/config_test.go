package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 3070 {
		t.Fatalf("port = %d, want 3070", cfg.Server.Port)
	}
	if cfg.Limits.MaxFileSizeMB != 50 || cfg.Limits.MaxSheets != 100 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if got := cfg.Limits.MaxFileSizeBytes(); got != 50*1024*1024 {
		t.Fatalf("max bytes = %d", got)
	}
	want := []string{"xlsx", "xls", "xlsm", "xlsb"}
	if len(cfg.Limits.AllowedExtensions) != len(want) {
		t.Fatalf("extensions = %v", cfg.Limits.AllowedExtensions)
	}
	for i, ext := range want {
		if cfg.Limits.AllowedExtensions[i] != ext {
			t.Fatalf("extensions = %v, want %v", cfg.Limits.AllowedExtensions, want)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SPLITTER_PORT", "8080")
	t.Setenv("SPLITTER_MAX_FILE_SIZE_MB", "10")
	t.Setenv("SPLITTER_MAX_SHEETS", "20")
	t.Setenv("SPLITTER_DATA_DIR", "/tmp/splitter-data")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Server.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Limits.MaxFileSizeMB != 10 || cfg.Limits.MaxSheets != 20 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.Data.DataDir != "/tmp/splitter-data" {
		t.Fatalf("data dir = %q", cfg.Data.DataDir)
	}
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("SPLITTER_PORT", "not-a-number")
	t.Setenv("SPLITTER_MAX_SHEETS", "-5")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	if cfg.Server.Port != 3070 || cfg.Limits.MaxSheets != 100 {
		t.Fatalf("invalid env should be ignored: %+v", cfg)
	}
}

func TestIsPortSpecifiedInToml(t *testing.T) {
	if !isPortSpecifiedInToml([]byte("[server]\nport = 9000\n")) {
		t.Fatalf("port key should be detected")
	}
	if isPortSpecifiedInToml([]byte("[server]\ndev_mode = true\n")) {
		t.Fatalf("missing port key should not be detected")
	}
	if isPortSpecifiedInToml([]byte("not toml at all {{")) {
		t.Fatalf("invalid toml should not be detected")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"MEDIABRIDGE_CONFIG", "MEDIABRIDGE_TTL", "MEDIABRIDGE_EXPIRY", "MEDIABRIDGE_CALL_TIMEOUT",
		"MEDIABRIDGE_POLL_INTERVAL", "MEDIABRIDGE_APP_IDS", "MEDIABRIDGE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := NewAppConfig(zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cfg.GetSettings()
	if s.CacheTTL != 3*time.Second {
		t.Errorf("CacheTTL: expected 3s, got %s", s.CacheTTL)
	}
	if s.Expiry != domain.ExpiryRefresh {
		t.Errorf("Expiry: expected refresh, got %s", s.Expiry)
	}
	if len(s.AppIDs) != 2 || s.AppIDs[0] != "Spotify.exe" {
		t.Errorf("AppIDs: unexpected %v", s.AppIDs)
	}
	if len(s.AppIDPatterns) != 1 || s.AppIDPatterns[0].Prefix != "SpotifyAB" {
		t.Errorf("AppIDPatterns: unexpected %v", s.AppIDPatterns)
	}
}

func TestNewAppConfig_Env(t *testing.T) {
	t.Setenv("MEDIABRIDGE_CONFIG", "")
	t.Setenv("MEDIABRIDGE_TTL", "0s")
	t.Setenv("MEDIABRIDGE_EXPIRY", "Revalidate")
	t.Setenv("MEDIABRIDGE_CALL_TIMEOUT", "500ms")
	t.Setenv("MEDIABRIDGE_POLL_INTERVAL", "250ms")
	t.Setenv("MEDIABRIDGE_APP_IDS", "Foo.exe, Vendor*!App ,")
	t.Setenv("MEDIABRIDGE_LOG_LEVEL", "debug")

	cfg, err := NewAppConfig(zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cfg.GetSettings()
	if s.CacheTTL != 0 {
		t.Errorf("CacheTTL: expected 0, got %s", s.CacheTTL)
	}
	if s.Expiry != domain.ExpiryRevalidate {
		t.Errorf("Expiry: expected revalidate, got %s", s.Expiry)
	}
	if s.CallTimeout != 500*time.Millisecond {
		t.Errorf("CallTimeout: expected 500ms, got %s", s.CallTimeout)
	}
	if s.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval: expected 250ms, got %s", s.PollInterval)
	}
	if len(s.AppIDs) != 1 || s.AppIDs[0] != "Foo.exe" {
		t.Errorf("AppIDs: unexpected %v", s.AppIDs)
	}
	if len(s.AppIDPatterns) != 1 || s.AppIDPatterns[0] != (domain.AppIDPattern{Prefix: "Vendor", Suffix: "!App"}) {
		t.Errorf("AppIDPatterns: unexpected %v", s.AppIDPatterns)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel: expected debug, got %s", s.LogLevel)
	}
}

func TestNewAppConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediabridge.toml")
	content := `
cache_ttl = "5s"
call_timeout = "1s"
app_ids = ["Custom.exe"]

[[app_id_patterns]]
prefix = "CustomAB"
suffix = "!Custom"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MEDIABRIDGE_CONFIG", path)
	t.Setenv("MEDIABRIDGE_TTL", "")
	t.Setenv("MEDIABRIDGE_EXPIRY", "")
	t.Setenv("MEDIABRIDGE_CALL_TIMEOUT", "4s") // env wins over file
	t.Setenv("MEDIABRIDGE_POLL_INTERVAL", "")
	t.Setenv("MEDIABRIDGE_APP_IDS", "")
	t.Setenv("MEDIABRIDGE_LOG_LEVEL", "")

	cfg, err := NewAppConfig(zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cfg.GetSettings()
	if s.CacheTTL != 5*time.Second {
		t.Errorf("CacheTTL: expected 5s, got %s", s.CacheTTL)
	}
	if s.CallTimeout != 4*time.Second {
		t.Errorf("CallTimeout: expected 4s, got %s", s.CallTimeout)
	}
	if len(s.AppIDs) != 1 || s.AppIDs[0] != "Custom.exe" {
		t.Errorf("AppIDs: unexpected %v", s.AppIDs)
	}
	if len(s.AppIDPatterns) != 1 || s.AppIDPatterns[0].Suffix != "!Custom" {
		t.Errorf("AppIDPatterns: unexpected %v", s.AppIDPatterns)
	}
}

func TestNewAppConfig_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{
			name:          "Bad Duration",
			env:           map[string]string{"MEDIABRIDGE_TTL": "soon"},
			expectedError: "invalid MEDIABRIDGE_TTL",
		},
		{
			name:          "Negative TTL",
			env:           map[string]string{"MEDIABRIDGE_TTL": "-1s"},
			expectedError: "must not be negative",
		},
		{
			name:          "Zero Timeout",
			env:           map[string]string{"MEDIABRIDGE_CALL_TIMEOUT": "0s"},
			expectedError: "call timeout must be positive",
		},
		{
			name:          "Unknown Expiry",
			env:           map[string]string{"MEDIABRIDGE_EXPIRY": "never"},
			expectedError: "unknown expiry policy",
		},
		{
			name:          "Missing Config File",
			env:           map[string]string{"MEDIABRIDGE_CONFIG": "/nonexistent/mediabridge.toml"},
			expectedError: "failed to read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				"MEDIABRIDGE_CONFIG", "MEDIABRIDGE_TTL", "MEDIABRIDGE_EXPIRY", "MEDIABRIDGE_CALL_TIMEOUT",
				"MEDIABRIDGE_POLL_INTERVAL", "MEDIABRIDGE_APP_IDS", "MEDIABRIDGE_LOG_LEVEL",
			} {
				t.Setenv(key, tt.env[key])
			}

			_, err := NewAppConfig(zap.NewNop())
			if err == nil {
				t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
			}
			if !strings.Contains(err.Error(), tt.expectedError) {
				t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediabridge.toml")
	if err := os.WriteFile(path, []byte(`log_level = "error"`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		config   string
		env      string
		expected string
	}{
		{"Fallback", "", "", "warn"},
		{"File", path, "", "error"},
		{"Env Wins Over File", path, "debug", "debug"},
		{"Missing File Falls Back", filepath.Join(dir, "missing.toml"), "", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MEDIABRIDGE_CONFIG", tt.config)
			t.Setenv("MEDIABRIDGE_LOG_LEVEL", tt.env)

			if got := LogLevel("warn"); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

const (
	defaultCacheTTL     = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
	defaultPollInterval = time.Second
)

// Accepted source identifiers of the Spotify desktop client
var (
	defaultAppIDs = []string{
		"Spotify.exe",
		"org.mpris.MediaPlayer2.spotify",
	}
	defaultAppIDPatterns = []domain.AppIDPattern{
		{Prefix: "SpotifyAB", Suffix: "!Spotify"},
	}
)

// fileConfig mirrors the optional TOML file
type fileConfig struct {
	CacheTTL      string                `toml:"cache_ttl"`
	Expiry        string                `toml:"expiry"`
	CallTimeout   string                `toml:"call_timeout"`
	PollInterval  string                `toml:"poll_interval"`
	AppIDs        []string              `toml:"app_ids"`
	AppIDPatterns []domain.AppIDPattern `toml:"app_id_patterns"`
	LogLevel      string                `toml:"log_level"`
}

// AppConfig holds application configuration
type AppConfig struct {
	logger   *zap.Logger
	settings domain.Settings
}

// Defaults returns the built-in settings
func Defaults() domain.Settings {
	return domain.Settings{
		CacheTTL:      defaultCacheTTL,
		Expiry:        domain.ExpiryRefresh,
		CallTimeout:   defaultCallTimeout,
		PollInterval:  defaultPollInterval,
		AppIDs:        append([]string(nil), defaultAppIDs...),
		AppIDPatterns: append([]domain.AppIDPattern(nil), defaultAppIDPatterns...),
	}
}

// NewAppConfig creates a new application configuration instance.
// Values come from the defaults, then the TOML file named by MEDIABRIDGE_CONFIG,
// then MEDIABRIDGE_* environment variables.
func NewAppConfig(logger *zap.Logger) (*AppConfig, error) {
	settings := Defaults()

	if path := os.Getenv("MEDIABRIDGE_CONFIG"); path != "" {
		if err := applyFile(&settings, expandPath(path)); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(&settings, os.Getenv); err != nil {
		return nil, err
	}

	if err := validate(settings); err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.Duration("cacheTTL", settings.CacheTTL),
		zap.String("expiry", string(settings.Expiry)),
		zap.Duration("callTimeout", settings.CallTimeout),
		zap.Duration("pollInterval", settings.PollInterval),
		zap.Strings("appIDs", settings.AppIDs),
		zap.Int("appIDPatterns", len(settings.AppIDPatterns)),
		zap.String("logLevel", settings.LogLevel))

	return &AppConfig{
		logger:   logger,
		settings: settings,
	}, nil
}

// GetSettings returns the resolved settings
func (c *AppConfig) GetSettings() domain.Settings {
	return c.settings
}

// LogLevel resolves the log level before a logger exists: MEDIABRIDGE_LOG_LEVEL,
// then log_level of the MEDIABRIDGE_CONFIG file, then fallback.
// Configuration errors are left for NewAppConfig to report.
func LogLevel(fallback string) string {
	var s domain.Settings
	if path := os.Getenv("MEDIABRIDGE_CONFIG"); path != "" {
		_ = applyFile(&s, expandPath(path))
	}
	if v := os.Getenv("MEDIABRIDGE_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if s.LogLevel == "" {
		return fallback
	}
	return s.LogLevel
}

func applyFile(s *domain.Settings, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	get := func(key string) string {
		switch key {
		case "MEDIABRIDGE_TTL":
			return fc.CacheTTL
		case "MEDIABRIDGE_EXPIRY":
			return fc.Expiry
		case "MEDIABRIDGE_CALL_TIMEOUT":
			return fc.CallTimeout
		case "MEDIABRIDGE_POLL_INTERVAL":
			return fc.PollInterval
		case "MEDIABRIDGE_LOG_LEVEL":
			return fc.LogLevel
		}
		return ""
	}
	if err := applyEnv(s, get); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if len(fc.AppIDs) > 0 {
		s.AppIDs = fc.AppIDs
	}
	if len(fc.AppIDPatterns) > 0 {
		s.AppIDPatterns = fc.AppIDPatterns
	}
	return nil
}

// applyEnv overrides settings from a key lookup function
func applyEnv(s *domain.Settings, getenv func(string) string) error {
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"MEDIABRIDGE_TTL", &s.CacheTTL},
		{"MEDIABRIDGE_CALL_TIMEOUT", &s.CallTimeout},
		{"MEDIABRIDGE_POLL_INTERVAL", &s.PollInterval},
	}
	for _, d := range durations {
		v := getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, v, err)
		}
		*d.dst = parsed
	}

	if v := getenv("MEDIABRIDGE_EXPIRY"); v != "" {
		s.Expiry = domain.ExpiryPolicy(strings.ToLower(v))
	}

	if v := getenv("MEDIABRIDGE_APP_IDS"); v != "" {
		s.AppIDs, s.AppIDPatterns = parseAppIDs(v)
	}

	if v := getenv("MEDIABRIDGE_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	return nil
}

// parseAppIDs splits a comma separated list. Entries containing '*' are
// prefix/suffix patterns ("SpotifyAB*!Spotify"), the rest exact identifiers.
func parseAppIDs(v string) ([]string, []domain.AppIDPattern) {
	var ids []string
	var patterns []domain.AppIDPattern
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if prefix, suffix, ok := strings.Cut(item, "*"); ok {
			patterns = append(patterns, domain.AppIDPattern{Prefix: prefix, Suffix: suffix})
			continue
		}
		ids = append(ids, item)
	}
	return ids, patterns
}

func validate(s domain.Settings) error {
	if s.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative: %s", s.CacheTTL)
	}
	if s.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive: %s", s.CallTimeout)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive: %s", s.PollInterval)
	}
	switch s.Expiry {
	case domain.ExpiryRefresh, domain.ExpiryRevalidate:
	default:
		return fmt.Errorf("unknown expiry policy %q", s.Expiry)
	}
	if len(s.AppIDs) == 0 && len(s.AppIDPatterns) == 0 {
		return fmt.Errorf("at least one application identifier is required")
	}
	return nil
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

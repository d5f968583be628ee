package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Content.Dir != "content" {
		t.Fatalf("unexpected default content dir %q", cfg.Content.Dir)
	}
	if cfg.Generator.OutputDir != "public" {
		t.Fatalf("unexpected default output dir %q", cfg.Generator.OutputDir)
	}
	if !cfg.Generator.GenerateSitemap || !cfg.Generator.TagPages {
		t.Fatalf("expected sitemap and tag pages enabled by default")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty content dir", func(c *Config) { c.Content.Dir = " " }, ErrContentDirRequired},
		{"empty output dir", func(c *Config) { c.Generator.OutputDir = "" }, ErrOutputDirRequired},
		{"negative wpm", func(c *Config) { c.Catalog.WordsPerMinute = -1 }, ErrWordsPerMinuteInvalid},
		{"negative workers", func(c *Config) { c.Generator.Workers = -2 }, ErrWorkersInvalid},
		{"empty logging provider", func(c *Config) { c.Logging.Provider = "" }, ErrLoggingProviderRequired},
		{"unknown logging provider", func(c *Config) { c.Logging.Provider = "syslog" }, ErrLoggingProviderUnknown},
		{"bad logging level", func(c *Config) { c.Logging.Level = "loud" }, ErrLoggingLevelInvalid},
		{"bad logging format", func(c *Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidateAcceptsLevelAliases(t *testing.T) {
	cfg := DefaultConfig()
	for _, level := range []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", ""} {
		cfg.Logging.Level = level
		if err := cfg.Validate(); err != nil {
			t.Fatalf("level %q: unexpected error %v", level, err)
		}
	}
}

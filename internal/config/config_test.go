package config

import (
	"testing"

	"github.com/spf13/cobra"
)

func testCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	RegisterFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(testCommand())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.NumLoads != DefaultNumLoads {
		t.Errorf("NumLoads = %d, want %d", cfg.NumLoads, DefaultNumLoads)
	}
	if cfg.NavTimeout != DefaultNavTimeout {
		t.Errorf("NavTimeout = %s, want %s", cfg.NavTimeout, DefaultNavTimeout)
	}
	if cfg.Headless != DefaultHeadless {
		t.Errorf("Headless = %v, want %v", cfg.Headless, DefaultHeadless)
	}
	if !cfg.StealthPatches {
		t.Error("stealth patches should default on")
	}
	if cfg.UserAgent == "" {
		t.Error("user agent should have a default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADSCAN_USER_AGENT", "custom-agent/1.0")
	t.Setenv("ADSCAN_PROXY", "socks5://127.0.0.1:1080")
	t.Setenv("ADSCAN_CHROME_PATH", "/opt/chrome/chrome")

	cfg, err := Load(testCommand())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserAgent != "custom-agent/1.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.Proxy != "socks5://127.0.0.1:1080" {
		t.Errorf("Proxy = %q", cfg.Proxy)
	}
	if cfg.ChromePath != "/opt/chrome/chrome" {
		t.Errorf("ChromePath = %q", cfg.ChromePath)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	cmd := testCommand()
	if err := cmd.ParseFlags([]string{
		"--loads", "3",
		"--timeout", "45s",
		"--headless",
		"--user-agent", "flag-agent/2.0",
		"--verbose",
	}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumLoads != 3 {
		t.Errorf("NumLoads = %d, want 3", cfg.NumLoads)
	}
	if cfg.NavTimeout.Seconds() != 45 {
		t.Errorf("NavTimeout = %s, want 45s", cfg.NavTimeout)
	}
	if !cfg.Headless {
		t.Error("Headless should be true")
	}
	if cfg.UserAgent != "flag-agent/2.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadMethodology(t *testing.T) {
	cmd := testCommand()
	if err := cmd.ParseFlags([]string{"--methodology"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumLoads != MethodologyNumLoads {
		t.Errorf("NumLoads = %d, want %d", cfg.NumLoads, MethodologyNumLoads)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			NumLoads:      DefaultNumLoads,
			NavTimeout:    DefaultNavTimeout,
			Delay:         DefaultInterVideoDelay,
			LoadRateRPS:   DefaultLoadRateRPS,
			LoadRateBurst: DefaultLoadRateBurst,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"zero loads", func(c *Config) { c.NumLoads = 0 }, true},
		{"loads above ceiling", func(c *Config) { c.NumLoads = MaxNumLoads + 1 }, true},
		{"loads at ceiling", func(c *Config) { c.NumLoads = MaxNumLoads }, false},
		{"zero timeout", func(c *Config) { c.NavTimeout = 0 }, true},
		{"negative delay", func(c *Config) { c.Delay = -1 }, true},
		{"zero delay", func(c *Config) { c.Delay = 0 }, false},
		{"zero rate", func(c *Config) { c.LoadRateRPS = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := validate(cfg)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

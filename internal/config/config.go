package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser session
	Headless         bool
	UseChromeChannel bool
	StealthPatches   bool
	ChromePath       string
	UserAgent        string
	Proxy            string

	// Detection
	NumLoads   int
	NavTimeout time.Duration
	Delay      time.Duration

	// Page-load pacing
	LoadRateRPS   float64
	LoadRateBurst int
}

// Load builds a Config by combining defaults, environment variables, and CLI
// flags. Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:         DefaultLogLevel,
		JSONLog:          DefaultJSONLog,
		Headless:         DefaultHeadless,
		UseChromeChannel: DefaultUseChromeChannel,
		StealthPatches:   DefaultStealthPatches,
		UserAgent:        DefaultUserAgent,
		NumLoads:         DefaultNumLoads,
		NavTimeout:       DefaultNavTimeout,
		Delay:            DefaultInterVideoDelay,
		LoadRateRPS:      DefaultLoadRateRPS,
		LoadRateBurst:    DefaultLoadRateBurst,
	}

	// Override from environment variables
	if v := os.Getenv("ADSCAN_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("ADSCAN_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("ADSCAN_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}

	// Read CLI flags if provided
	if cmd != nil {
		flags := cmd.Flags()
		if f := flags.Lookup("user-agent"); f != nil && f.Changed {
			cfg.UserAgent = f.Value.String()
		}
		if f := flags.Lookup("proxy"); f != nil && f.Changed {
			cfg.Proxy = f.Value.String()
		}
		if f := flags.Lookup("chrome-path"); f != nil && f.Changed {
			cfg.ChromePath = f.Value.String()
		}
		if f := flags.Lookup("timeout"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.NavTimeout = d
			}
		}
		if f := flags.Lookup("delay"); f != nil && f.Changed {
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				cfg.Delay = d
			}
		}
		if f := flags.Lookup("headless"); f != nil {
			cfg.Headless = f.Value.String() == "true"
		}
		if f := flags.Lookup("stealth"); f != nil {
			cfg.StealthPatches = f.Value.String() == "true"
		}
		if f := flags.Lookup("chrome-channel"); f != nil {
			cfg.UseChromeChannel = f.Value.String() == "true"
		}
		if f := flags.Lookup("loads"); f != nil && f.Changed {
			if n, err := strconv.Atoi(f.Value.String()); err == nil {
				cfg.NumLoads = n
			}
		}
		if f := flags.Lookup("methodology"); f != nil && f.Value.String() == "true" {
			cfg.NumLoads = MethodologyNumLoads
		}
		if f := flags.Lookup("json"); f != nil && f.Value.String() == "true" {
			cfg.JSONLog = true
		}
		if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
		if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

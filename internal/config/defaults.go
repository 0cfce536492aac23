package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel = "info"
	DefaultJSONLog  = false

	// Ad delivery is materially less reliable in headless mode, so the
	// detector runs headed unless explicitly told otherwise.
	DefaultHeadless = false

	// One load per video by default; the research methodology runs five for
	// DOM corroboration (--methodology).
	DefaultNumLoads     = 1
	MethodologyNumLoads = 5

	DefaultStealthPatches   = true
	DefaultUseChromeChannel = true

	DefaultNavTimeout      = 30 * time.Second
	DefaultInterVideoDelay = 1 * time.Second

	// Page-load pacing: one navigation every two seconds per host.
	DefaultLoadRateRPS   = 0.5
	DefaultLoadRateBurst = 1

	MaxNumLoads = 10

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

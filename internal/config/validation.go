package config

import "fmt"

func validate(cfg *Config) error {
	if cfg.NumLoads < 1 || cfg.NumLoads > MaxNumLoads {
		return fmt.Errorf("loads must be between 1 and %d, got %d", MaxNumLoads, cfg.NumLoads)
	}
	if cfg.NavTimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.NavTimeout)
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", cfg.Delay)
	}
	if cfg.LoadRateRPS <= 0 {
		return fmt.Errorf("load rate must be positive, got %g", cfg.LoadRateRPS)
	}
	return nil
}

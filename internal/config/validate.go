package config

import (
	"fmt"
	"net/url"
)

const (
	minJWTSecretLen      = 32
	maxJournalRecentRows = 500
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret != "" && len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters (got %d)", minJWTSecretLen, len(c.Auth.JWTSecret))
	}

	if err := c.Tezaurs.validate(); err != nil {
		return fmt.Errorf("tezaurs: %w", err)
	}

	if c.Journal.RecentLimit < 1 || c.Journal.RecentLimit > maxJournalRecentRows {
		return fmt.Errorf("journal.recent_limit must be in [1, %d] (got %d)", maxJournalRecentRows, c.Journal.RecentLimit)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	return nil
}

func (t *TezaursConfig) validate() error {
	u, err := url.Parse(t.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", t.BaseURL)
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", t.Timeout)
	}
	if t.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be > 0 (got %d)", t.MaxBodyBytes)
	}
	if t.MaxIdleConns < 0 {
		return fmt.Errorf("max_idle_conns must be >= 0 (got %d)", t.MaxIdleConns)
	}
	return nil
}

package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Tezaurs  TezaursConfig  `yaml:"tezaurs"`
	Journal  JournalConfig  `yaml:"journal"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitPerMinute caps API requests per client; 0 disables the limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// DatabaseConfig holds PostgreSQL connection settings.
// An empty DSN disables the lookup journal.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token settings for the REST API.
// An empty secret disables authentication.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"tezaurs-gateway"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"720h"`
}

// TezaursConfig holds settings for the upstream morphology service.
type TezaursConfig struct {
	BaseURL      string        `yaml:"base_url"       env:"TEZAURS_BASE_URL"       env-default:"http://api.tezaurs.lv:8182"`
	Timeout      time.Duration `yaml:"timeout"        env:"TEZAURS_TIMEOUT"        env-default:"10s"`
	MaxIdleConns int           `yaml:"max_idle_conns" env:"TEZAURS_MAX_IDLE_CONNS" env-default:"16"`
	// UserAgent defaults to the gateway name and build version when empty.
	UserAgent    string        `yaml:"user_agent"     env:"TEZAURS_USER_AGENT"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" env:"TEZAURS_MAX_BODY_BYTES" env-default:"4194304"`
}

// JournalConfig holds lookup journal settings.
type JournalConfig struct {
	Enabled     bool `yaml:"enabled"      env:"JOURNAL_ENABLED"      env-default:"true"`
	RecentLimit int  `yaml:"recent_limit" env:"JOURNAL_RECENT_LIMIT" env-default:"50"`
	// AutoMigrate applies pending schema migrations at startup.
	AutoMigrate bool `yaml:"auto_migrate" env:"JOURNAL_AUTO_MIGRATE" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AuthEnabled reports whether bearer tokens are required on the API.
func (c AuthConfig) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// JournalActive reports whether lookups should be persisted.
func (c Config) JournalActive() bool {
	return c.Journal.Enabled && c.Database.DSN != ""
}

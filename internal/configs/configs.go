/*
Package configs is responsible for loading and parsing the application's configuration settings.

Values come from the process environment, optionally seeded from a .env file, and can be
overridden by command-line flags in cmd/main.go. They cover the running environment, the
listen or target address, CORS allowed origins and timeouts.
*/
package configs

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

const (
	// MinPort and MaxPort bound the accepted port range to avoid privileged ports.
	MinPort = 1024
	MaxPort = 65535
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Settings
	Environment string `env:"ENVIRONMENT,default=development"`
	Host        string `env:"HOST,default=127.0.0.1"`
	Port        int    `env:"PORT,default=3030"`

	// Security Settings, a comma separated list of CORS origins
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Rate limiting of registration and room creation, per client IP.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE,default=30"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST,default=10"`

	// Timeouts
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
	ClientTimeout   time.Duration `env:"CLIENT_TIMEOUT,default=5s"`
}

// LoadConfig reads the optional .env file, then parses the application configuration
// from environment variables and validates it.
func LoadConfig(envFiles ...string) (*AppConfig, error) {
	// a missing .env file is the normal case outside local development
	_ = godotenv.Load(envFiles...)

	cfg := &AppConfig{}
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Origins returns the trimmed, non-empty entries of ALLOWED_ORIGINS.
func (c *AppConfig) Origins() []string {
	origins := lo.Map(strings.Split(c.AllowedOrigins, ","), func(origin string, _ int) string {
		return strings.TrimSpace(origin)
	})
	return lo.Compact(origins)
}

// IsDevelopment reports whether the application runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// Addr returns the host:port pair to listen on or connect to.
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// BaseURL returns the http base URL of the server the client talks to.
func (c *AppConfig) BaseURL() string {
	return "http://" + c.Addr()
}

// Validate checks the host and port. It is called again after flag overrides.
func (c *AppConfig) Validate() error {
	if err := ValidateHost(c.Host); err != nil {
		return err
	}

	if c.Port < MinPort || c.Port > MaxPort {
		return fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", c.Port, MinPort, MaxPort)
	}

	if c.RateLimitPerMinute <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}

	return nil
}

// ValidateHost accepts only a dotted IPv4 quad such as 127.0.0.1.
func ValidateHost(host string) error {
	addr, err := netip.ParseAddr(host)
	if err != nil || !addr.Is4() {
		return fmt.Errorf("host %q is not a dotted IPv4 address", host)
	}
	return nil
}

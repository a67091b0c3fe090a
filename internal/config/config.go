// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file, an optional .env file and env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the student performance CSV.
	DatasetPath string `koanf:"dataset_path"`

	// DatabasePath is the SQLite file for persisted predictions.
	DatabasePath string `koanf:"database_path"`

	// APIBaseURL is the prediction API the dashboard talks to. Empty means
	// this process, derived from Addr.
	APIBaseURL string `koanf:"api_base_url"`

	// RequestTimeoutMS bounds every dashboard call to the API.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// ChartWidth and ChartHeight size the dashboard canvas in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// PolynomialDegree is the degree of the polynomial model.
	PolynomialDegree int `koanf:"polynomial_degree"`

	// CurveMin, CurveMax and CurvePoints shape /model/regression-data.
	CurveMin    float64 `koanf:"curve_min"`
	CurveMax    float64 `koanf:"curve_max"`
	CurvePoints int     `koanf:"curve_points"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DatasetPath:      "data/StudentPerformanceFactors.csv",
		DatabasePath:     "studyscore.db",
		RequestTimeoutMS: 5000,
		ChartWidth:       900,
		ChartHeight:      480,
		PolynomialDegree: 2,
		CurveMin:         0,
		CurveMax:         30,
		CurvePoints:      100,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// ResolvedAPIBaseURL returns APIBaseURL, or a loopback URL for Addr when unset.
func (c *Config) ResolvedAPIBaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	host, port, found := strings.Cut(c.Addr, ":")
	if !found {
		return "http://" + c.Addr
	}
	if host == "" || host == "0.0.0.0" || host == "[::]" {
		host = "127.0.0.1"
	}
	return "http://" + host + ":" + port
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	case c.CurvePoints < 2:
		return fmt.Errorf("%w: curve_points must be at least 2", ErrInvalidConfig)
	case c.CurveMax <= c.CurveMin:
		return fmt.Errorf("%w: curve_max must exceed curve_min", ErrInvalidConfig)
	case c.PolynomialDegree < 1:
		return fmt.Errorf("%w: polynomial_degree must be at least 1", ErrInvalidConfig)
	case c.RequestTimeoutMS <= 0:
		return fmt.Errorf("%w: request_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.APIBaseURL != "" {
		u, err := url.Parse(c.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: api_base_url must be an absolute URL", ErrInvalidConfig)
		}
	}
	return nil
}

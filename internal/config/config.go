package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/livesearch/internal/domain"
)

// Config holds the livesearch BFF configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Auth       AuthConfig       `yaml:"auth"`
	Storefront StorefrontConfig `yaml:"storefront"`
	Images     ImagesConfig     `yaml:"images"`
	Cache      CacheConfig      `yaml:"cache"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"` // empty = auth disabled
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	// UpstreamTimeoutSec bounds each outbound catalog or storefront call.
	UpstreamTimeoutSec int `yaml:"upstream_timeout_sec"`
}

// StorefrontConfig identifies the tenant and its endpoints.
type StorefrontConfig struct {
	EnvironmentID   string `yaml:"environment_id"`
	EnvironmentType string `yaml:"environment_type"` // "testing" selects the sandbox
	WebsiteCode     string `yaml:"website_code"`
	StoreCode       string `yaml:"store_code"`
	StoreViewCode   string `yaml:"store_view_code"`
	APIURL          string `yaml:"api_url"`
	APIKey          string `yaml:"api_key"`
	SandboxAPIKey   string `yaml:"sandbox_api_key"`
	// StoreGraphQLURL is the storefront's own GraphQL endpoint (stock alerts).
	StoreGraphQLURL string `yaml:"store_graphql_url"`
	// PromoTilesPath locates the static promo tile document.
	PromoTilesPath string `yaml:"promo_tiles_path"`
	// StaticBaseURL resolves a relative PromoTilesPath.
	StaticBaseURL string `yaml:"static_base_url"`
}

// ImagesConfig holds CDN rewrite settings.
type ImagesConfig struct {
	CDNHost       string `yaml:"cdn_host"`
	LegacySegment string `yaml:"legacy_segment"`
}

// CacheConfig holds the optional Redis promo tile cache.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           int      `yaml:"ttl_sec"`
	ClientCacheSec   int      `yaml:"client_cache_sec"` // 0 disables client-side caching
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Endpoint resolves the catalog endpoint and key for the environment type.
func (s StorefrontConfig) Endpoint() domain.Endpoint {
	return domain.ResolveEndpoint(s.EnvironmentType, s.APIURL, s.APIKey, s.SandboxAPIKey)
}

// Identity returns the tenant routing identity.
func (s StorefrontConfig) Identity() domain.Identity {
	return domain.Identity{
		EnvironmentID: s.EnvironmentID,
		WebsiteCode:   s.WebsiteCode,
		StoreCode:     s.StoreCode,
		StoreViewCode: s.StoreViewCode,
		APIKey:        s.Endpoint().APIKey,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// ${VAR} and ${VAR:-default} are expanded before parsing.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.UpstreamTimeoutSec <= 0 {
		c.HTTP.UpstreamTimeoutSec = 5
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "livesearch"
	}
	if c.Tracing.SampleRatio <= 0 {
		c.Tracing.SampleRatio = 0.1
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Storefront.EnvironmentID == "" {
		return domain.ConfigurationMissing("storefront.environment_id")
	}
	if c.Storefront.Endpoint().APIKey == "" {
		return domain.ConfigurationMissing("storefront.api_key")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	if c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be in (0, 1], got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

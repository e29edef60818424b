package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrReadTokenRequired indicates the read-scope content store credential is missing.
var ErrReadTokenRequired = errors.New("site config: content store read token is required")

// ErrAdminTokenRequired indicates the admin-scope credential is missing for a provisioning run.
var ErrAdminTokenRequired = errors.New("site config: content store admin token is required for provisioning")

// ErrSpaceIDRequired indicates provisioning was attempted without a target space.
var ErrSpaceIDRequired = errors.New("site config: content store space id is required for provisioning")

// ErrRegionUnknown indicates an unsupported content store region selector.
var ErrRegionUnknown = errors.New("site config: content store region is invalid")

// ErrVersionInvalid indicates the draft/published mode switch holds an unknown value.
var ErrVersionInvalid = errors.New("site config: content version must be draft or published")

var ErrCacheTTLInvalid = errors.New("site config: published cache TTL must be zero or positive")
var ErrFetchTimeoutInvalid = errors.New("site config: fetch timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("site config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

// Region selectors recognised by the content store client.
const (
	RegionEU = "eu"
	RegionUS = "us"
)

// Content versions recognised by the content store.
const (
	VersionDraft     = "draft"
	VersionPublished = "published"
)

// Config aggregates credentials, feature flags, and adapter bindings for the
// site runtime. Fields intentionally use simple types so host applications can
// extend them later.
type Config struct {
	Region   string
	SpaceID  string
	Version  string
	Tokens   TokenConfig
	Cache    CacheConfig
	Fetch    FetchConfig
	Features Features
	Logging  LoggingConfig
}

// TokenConfig carries the two content store credential classes. The read token
// is the only one the rendering path may use; the admin token is reserved for
// provisioning and must never reach browser-facing code.
type TokenConfig struct {
	Read  string
	Admin string
}

// CacheConfig captures published-content cache behaviour. Draft reads always
// bypass the cache regardless of these settings.
type CacheConfig struct {
	Enabled      bool
	PublishedTTL time.Duration
}

// FetchConfig bounds individual content store requests and allows endpoint
// overrides, primarily for tests.
type FetchConfig struct {
	Timeout      time.Duration
	BaseURL      string
	AdminBaseURL string
}

// Features toggles runtime functionality.
type Features struct {
	CMSImages bool
	Logger    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a rendering process.
func DefaultConfig() Config {
	return Config{
		Region:  RegionEU,
		Version: VersionPublished,
		Cache: CacheConfig{
			Enabled:      true,
			PublishedTTL: 30 * time.Minute,
		},
		Fetch: FetchConfig{
			Timeout: 10 * time.Second,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// FromEnv builds a Config from recognised environment variables layered over
// DefaultConfig. It performs no validation; callers run Validate (and
// ValidateProvisioning for admin flows) before any network call.
func FromEnv() Config {
	cfg := DefaultConfig()

	if region := strings.TrimSpace(os.Getenv("CONTENTSTORE_REGION")); region != "" {
		cfg.Region = strings.ToLower(region)
	}
	if space := strings.TrimSpace(os.Getenv("CONTENTSTORE_SPACE_ID")); space != "" {
		cfg.SpaceID = space
	}
	if version := strings.TrimSpace(os.Getenv("CONTENT_VERSION")); version != "" {
		cfg.Version = strings.ToLower(version)
	}
	cfg.Tokens.Read = strings.TrimSpace(os.Getenv("CONTENTSTORE_READ_TOKEN"))
	cfg.Tokens.Admin = strings.TrimSpace(os.Getenv("CONTENTSTORE_ADMIN_TOKEN"))

	if raw := strings.TrimSpace(os.Getenv("FEATURE_CMS_IMAGES")); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			cfg.Features.CMSImages = enabled
		}
	}
	if level := strings.TrimSpace(os.Getenv("SITE_LOG_LEVEL")); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(os.Getenv("SITE_LOG_FORMAT")); format != "" {
		cfg.Features.Logger = true
		cfg.Logging.Format = format
	}

	return cfg
}

// Validate performs high-level consistency checks for the rendering runtime.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Tokens.Read) == "" {
		return ErrReadTokenRequired
	}
	if !isSupportedRegion(cfg.Region) {
		return fmt.Errorf("%w: %s", ErrRegionUnknown, cfg.Region)
	}
	if !isSupportedVersion(cfg.Version) {
		return fmt.Errorf("%w: %s", ErrVersionInvalid, cfg.Version)
	}
	if cfg.Cache.PublishedTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Fetch.Timeout < 0 {
		return ErrFetchTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := strings.ToLower(strings.TrimSpace(cfg.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// ValidateProvisioning extends Validate with the requirements of admin flows.
// Provisioning never runs on the read credential alone.
func (cfg Config) ValidateProvisioning() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Tokens.Admin) == "" {
		return ErrAdminTokenRequired
	}
	if strings.TrimSpace(cfg.SpaceID) == "" {
		return ErrSpaceIDRequired
	}
	return nil
}

// BaseURL resolves the delivery API endpoint for the configured region,
// honouring the Fetch override when present.
func (cfg Config) BaseURL() string {
	if override := strings.TrimSpace(cfg.Fetch.BaseURL); override != "" {
		return strings.TrimRight(override, "/")
	}
	if strings.ToLower(strings.TrimSpace(cfg.Region)) == RegionUS {
		return "https://api-us.contentstore.io"
	}
	return "https://api.eu.contentstore.io"
}

// AdminBaseURL resolves the management API endpoint, honouring the Fetch
// override when present. Management traffic is region-agnostic.
func (cfg Config) AdminBaseURL() string {
	if override := strings.TrimSpace(cfg.Fetch.AdminBaseURL); override != "" {
		return strings.TrimRight(override, "/")
	}
	return "https://mapi.contentstore.io"
}

func isSupportedRegion(region string) bool {
	switch strings.ToLower(strings.TrimSpace(region)) {
	case RegionEU, RegionUS:
		return true
	default:
		return false
	}
}

func isSupportedVersion(version string) bool {
	switch strings.ToLower(strings.TrimSpace(version)) {
	case VersionDraft, VersionPublished:
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "noop", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

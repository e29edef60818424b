// Package venuesite is the top level runtime facade for the venue site: it
// wires the content store clients, the field resolution and rendering
// pipeline, the page service, and the HTTP surface from one configuration.
package venuesite

import (
	"context"
	"fmt"
	"time"

	"github.com/rumriverbarn/venuesite/internal/gallery"
	"github.com/rumriverbarn/venuesite/internal/httpapi"
	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/logging/gologger"
	"github.com/rumriverbarn/venuesite/internal/pages"
	"github.com/rumriverbarn/venuesite/internal/preview"
	"github.com/rumriverbarn/venuesite/internal/render"
	"github.com/rumriverbarn/venuesite/internal/resolver"
	"github.com/rumriverbarn/venuesite/internal/runtimeconfig"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// Config exports the runtime configuration for consumers of the package.
type Config = runtimeconfig.Config

// PageService exports the page assembly service contract.
type PageService = pages.Service

// PreviewSession exports the live preview session.
type PreviewSession = preview.Session

// GalleryController exports the photo viewer state machine.
type GalleryController = gallery.Controller

// Candidate exports the linker's match candidate type.
type Candidate = linker.Candidate

// CandidateSource exports the contract for listing link-match candidates.
type CandidateSource = pages.CandidateSource

// weddingFolder is the content store folder wedding records live under.
const weddingFolder = "real-weddings"

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv layers environment values over the defaults.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv()
}

// Module is the assembled site runtime.
type Module struct {
	config     Config
	provider   interfaces.LoggerProvider
	client     *story.Client
	registry   *render.Registry
	candidates pages.CandidateSource
	pages      *pages.Service
	api        *httpapi.API
}

// Option overrides module assembly.
type Option func(*Module)

// WithLoggerProvider replaces the configured logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithCandidateSource replaces the default wedding listing used to match
// unlinked gallery cards at render time.
func WithCandidateSource(source pages.CandidateSource) Option {
	return func(m *Module) {
		if source != nil {
			m.candidates = source
		}
	}
}

// New assembles the site runtime from configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("site config: %w", err)
	}

	m := &Module{config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil {
		provider, err := buildLoggerProvider(cfg)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	m.client = story.NewClient(cfg.BaseURL(), cfg.Tokens.Read,
		story.WithTimeout(cfg.Fetch.Timeout),
		story.WithPublishedCacheTTL(cacheTTL(cfg)),
		story.WithLogger(logging.StoryLogger(m.provider)),
	)

	fieldResolver := resolver.New(
		resolver.WithCMSImages(cfg.Features.CMSImages),
		resolver.WithLogger(logging.ResolverLogger(m.provider)),
	)
	m.registry = render.NewRegistry(fieldResolver,
		render.WithLogger(logging.RenderLogger(m.provider)),
	)

	if m.candidates == nil {
		m.candidates = pages.NewWeddingCandidates(m.client, weddingFolder, cfg.Version)
	}

	m.pages = pages.NewService(m.client, m.registry,
		pages.WithLogger(logging.ModuleLogger(m.provider, "site.pages")),
		pages.WithCandidateSource(m.candidates),
	)

	m.api = httpapi.New(
		httpapi.WithContentReader(m.client),
		httpapi.WithPageService(m.pages),
		httpapi.WithConfig(cfg),
		httpapi.WithLogger(logging.HTTPLogger(m.provider)),
	)

	return m, nil
}

// Config returns the configuration the module was assembled with.
func (m *Module) Config() Config { return m.config }

// LoggerProvider exposes the provider for module-scoped loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider { return m.provider }

// Client returns the read-scope content store client.
func (m *Module) Client() *story.Client { return m.client }

// Registry returns the section renderer registry.
func (m *Module) Registry() *render.Registry { return m.registry }

// Pages returns the page assembly service.
func (m *Module) Pages() *pages.Service { return m.pages }

// API returns the HTTP surface.
func (m *Module) API() *httpapi.API { return m.api }

// Management constructs the admin-scope management client. It fails when the
// provisioning credentials are absent; the read path never holds them.
func (m *Module) Management() (*story.ManagementClient, error) {
	if err := m.config.ValidateProvisioning(); err != nil {
		return nil, err
	}
	return story.NewManagementClient(
		m.config.AdminBaseURL(),
		m.config.Tokens.Admin,
		m.config.SpaceID,
		story.WithManagementTimeout(m.config.Fetch.Timeout),
		story.WithManagementLogger(logging.ProvisionLogger(m.provider)),
	), nil
}

// PreviewSession builds a live preview session for one page slug, fetching
// drafts through the module's client.
func (m *Module) PreviewSession(slug string, locator preview.Locator, opts ...preview.SessionOption) *preview.Session {
	fetch := preview.FetcherFunc(func(ctx context.Context) (*story.Story, error) {
		return m.client.GetStory(ctx, slug, story.VersionDraft)
	})
	sessionOpts := append([]preview.SessionOption{
		preview.WithLogger(logging.PreviewLogger(m.provider)),
	}, opts...)
	return preview.NewSession(fetch, locator, sessionOpts...)
}

func buildLoggerProvider(cfg Config) (interfaces.LoggerProvider, error) {
	switch cfg.Logging.Provider {
	case "", "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
	case "noop":
		return noopProvider{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
}

func cacheTTL(cfg Config) time.Duration {
	if !cfg.Cache.Enabled {
		return 0
	}
	return cfg.Cache.PublishedTTL
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

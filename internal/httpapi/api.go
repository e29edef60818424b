// Package httpapi exposes the site's HTTP surface: the rendered pages, the
// content record endpoint the live preview re-fetches from, and a
// credential-free debug panel.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/pages"
	"github.com/rumriverbarn/venuesite/internal/runtimeconfig"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// ContentReader is the slice of the content store client the API serves
// records from.
type ContentReader interface {
	GetStoryByUUID(ctx context.Context, id uuid.UUID, version string) (*story.Story, error)
}

// API registers the site endpoints.
type API struct {
	basePath string
	reader   ContentReader
	pages    *pages.Service
	config   runtimeconfig.Config
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithContentReader wires the content store reader.
func WithContentReader(reader ContentReader) Option {
	return func(api *API) {
		api.reader = reader
	}
}

// WithPageService wires the page service behind the rendered routes.
func WithPageService(service *pages.Service) Option {
	return func(api *API) {
		api.pages = service
	}
}

// WithConfig supplies the runtime config the debug panel summarizes.
func WithConfig(cfg runtimeconfig.Config) Option {
	return func(api *API) {
		api.config = cfg
	}
}

// WithLogger injects the API logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// New constructs an API instance.
func New(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		config:   runtimeconfig.DefaultConfig(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Register attaches every route to the mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(api.basePath, "content-record"), api.handleContentRecord)
	mux.HandleFunc("GET "+joinPath(api.basePath, "debug"), api.handleDebug)
	mux.HandleFunc("GET /{slug...}", api.handlePage)
}

// handleContentRecord serves one record by UUID. The live preview bridge
// calls this on every qualifying editor event.
func (api *API) handleContentRecord(w http.ResponseWriter, r *http.Request) {
	if api.reader == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("uuid"))
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "uuid query parameter is required"})
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid uuid"})
		return
	}

	version, err := normalizeVersion(r.URL.Query().Get("version"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	record, err := api.reader.GetStoryByUUID(r.Context(), id, version)
	if err != nil {
		api.writeStoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordResponse{Story: record})
}

// handlePage renders a full page. Content store outages degrade to a static
// fallback page; an unknown slug renders the not-found page. Neither path
// surfaces an error page to the visitor.
func (api *API) handlePage(w http.ResponseWriter, r *http.Request) {
	if api.pages == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	slug := strings.Trim(r.PathValue("slug"), "/")
	if slug == "" {
		slug = "home"
	}

	version, err := normalizeVersion(r.URL.Query().Get("version"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := api.pages.RenderPage(r.Context(), slug, version)
	if err != nil {
		api.writePageError(w, slug, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(pageShellOpen))
	w.Write([]byte(body))
	w.Write([]byte(pageShellClose))
}

// handleDebug summarizes the runtime setup for operators. Credential values
// never appear here; only their presence is reported.
func (api *API) handleDebug(w http.ResponseWriter, r *http.Request) {
	cfg := api.config
	writeJSON(w, http.StatusOK, debugResponse{
		Region:        cfg.Region,
		Version:       cfg.Version,
		CacheEnabled:  cfg.Cache.Enabled,
		CacheTTL:      cfg.Cache.PublishedTTL.String(),
		FetchTimeout:  cfg.Fetch.Timeout.String(),
		CMSImages:     cfg.Features.CMSImages,
		ReadTokenSet:  cfg.Tokens.Read != "",
		AdminTokenSet: cfg.Tokens.Admin != "",
	})
}

type recordResponse struct {
	Story *story.Story `json:"story"`
}

type debugResponse struct {
	Region        string `json:"region"`
	Version       string `json:"version"`
	CacheEnabled  bool   `json:"cache_enabled"`
	CacheTTL      string `json:"cache_ttl"`
	FetchTimeout  string `json:"fetch_timeout"`
	CMSImages     bool   `json:"cms_images"`
	ReadTokenSet  bool   `json:"read_token_set"`
	AdminTokenSet bool   `json:"admin_token_set"`
}

// Package resolver computes the effective value of every display field a
// section renders. Each field walks a fixed precedence chain: an explicit
// per-item override, the corresponding field on a linked record, then the
// renderer's static default. Resolution is deterministic and side-effect
// free; values are recomputed on every render pass, never persisted.
package resolver

import (
	"strings"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// Resolver collapses CMS field unions into plain render-ready values.
type Resolver struct {
	cmsImages bool
	logger    interfaces.Logger
}

// Option mutates the Resolver configuration.
type Option func(*Resolver)

// WithCMSImages gates asset-typed fields. When disabled, asset fields always
// resolve to the static default regardless of override or linked values; the
// gate exists to control a phased content rollout.
func WithCMSImages(enabled bool) Option {
	return func(r *Resolver) {
		r.cmsImages = enabled
	}
}

// WithLogger injects the resolver logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		cmsImages: true,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve returns the effective value for a plain text field. An empty or
// whitespace-only override does not count as present; absence cascades to the
// linked record and finally the static default.
func (r *Resolver) Resolve(field string, item, linked story.Block, defaults map[string]string) string {
	if value := item.String(field); value != "" {
		return value
	}
	if value := linked.String(field); value != "" {
		return value
	}
	return defaults[field]
}

// ResolveAsset returns the effective URL for an asset-typed field. The field
// may arrive as a bare string URL or as a structured asset object; both
// collapse to a plain URL before the renderer sees them. When the CMS images
// gate is disabled the static fallback wins unconditionally.
func (r *Resolver) ResolveAsset(field string, item, linked story.Block, fallback string) string {
	if !r.cmsImages {
		return fallback
	}
	if url := NormalizeAsset(item.Field(field)); url != "" {
		return url
	}
	if url := NormalizeAsset(linked.Field(field)); url != "" {
		return url
	}
	return fallback
}

// ResolveLink returns the effective URL for a link-typed field. Links arrive
// either as plain strings or as objects carrying a cached_url; relative
// cached URLs are rooted.
func (r *Resolver) ResolveLink(field string, item story.Block, fallback string) string {
	switch value := item.Field(field).(type) {
	case string:
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	case map[string]any:
		if cached, ok := value["cached_url"].(string); ok {
			if trimmed := strings.TrimSpace(cached); trimmed != "" {
				if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
					return trimmed
				}
				return "/" + strings.TrimLeft(trimmed, "/")
			}
		}
		if raw, ok := value["url"].(string); ok {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}

// NormalizeAsset collapses the string-or-asset-object union to a plain URL
// string. Absent, empty, and unrecognised values normalize to "", which
// signals the caller to continue down the precedence chain. The operation is
// idempotent: normalizing an already normalized value returns it unchanged.
func NormalizeAsset(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		if filename, ok := typed["filename"].(string); ok {
			return strings.TrimSpace(filename)
		}
		return ""
	case story.Block:
		return NormalizeAsset(map[string]any(typed))
	default:
		return ""
	}
}

// AssetAlt extracts the alt text from a structured asset object, empty for
// bare string assets.
func AssetAlt(value any) string {
	switch typed := value.(type) {
	case map[string]any:
		if alt, ok := typed["alt"].(string); ok {
			return strings.TrimSpace(alt)
		}
	case story.Block:
		return AssetAlt(map[string]any(typed))
	}
	return ""
}

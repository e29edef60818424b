// Package pages orchestrates a full page render: fetch the page record,
// resolve every cross-record link its sections declare, and hand the
// assembled data to the section renderers.
package pages

import (
	"context"
	"html/template"

	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/render"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// ContentClient is the slice of the content store client the page service
// needs.
type ContentClient interface {
	GetStory(ctx context.Context, slug, version string) (*story.Story, error)
	GetStoriesByUUIDs(ctx context.Context, ids []uuid.UUID, version string) (map[uuid.UUID]*story.Story, map[uuid.UUID]error)
}

// CandidateSource lists the wedding records available for name matching when
// a gallery card carries no persisted link. Optional; without one, unlinked
// cards render from their own stub fields.
type CandidateSource interface {
	Candidates(ctx context.Context) ([]linker.Candidate, error)
}

// Service assembles render-ready page data.
type Service struct {
	client     ContentClient
	registry   *render.Registry
	candidates CandidateSource
	logger     interfaces.Logger
}

// Option mutates Service construction.
type Option func(*Service)

// WithCandidateSource enables render-time link resolution for gallery cards
// without a persisted wedding link.
func WithCandidateSource(source CandidateSource) Option {
	return func(s *Service) {
		s.candidates = source
	}
}

// WithLogger injects the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds the page service.
func NewService(client ContentClient, registry *render.Registry, opts ...Option) *Service {
	s := &Service{
		client:   client,
		registry: registry,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// GetPage fetches one page record and every record its sections link to.
// Linked record failures degrade the affected card only; the page itself
// fails only when its own record cannot be fetched.
func (s *Service) GetPage(ctx context.Context, slug, version string) (*render.PageData, error) {
	record, err := s.client.GetStory(ctx, slug, version)
	if err != nil {
		return nil, err
	}
	return s.Assemble(ctx, record, version), nil
}

// Assemble resolves the cross-record links of an already fetched page
// record. The preview path uses it directly with snapshots that never came
// from this client.
func (s *Service) Assemble(ctx context.Context, record *story.Story, version string) *render.PageData {
	data := &render.PageData{
		Story:   record,
		Linked:  map[string]*story.Story{},
		Version: version,
	}
	if record == nil {
		return data
	}

	ids := collectLinkedIDs(record)

	if matches := s.resolveCardLinks(ctx, record); len(matches) > 0 {
		data.CardLinks = make(map[string]string, len(matches))
		seen := make(map[uuid.UUID]bool, len(ids))
		for _, id := range ids {
			seen[id] = true
		}
		for cardID, id := range matches {
			data.CardLinks[cardID] = id.String()
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		return data
	}

	found, failures := s.client.GetStoriesByUUIDs(ctx, ids, version)
	for id, linked := range found {
		data.Linked[id.String()] = linked
	}
	for id, fetchErr := range failures {
		s.logger.Warn("pages.link.unresolved",
			"page", record.FullSlug,
			"uuid", id.String(),
			"error", fetchErr,
		)
	}
	return data
}

// RenderPage fetches, assembles, and renders a page body in one call.
func (s *Service) RenderPage(ctx context.Context, slug, version string) (template.HTML, error) {
	data, err := s.GetPage(ctx, slug, version)
	if err != nil {
		return "", err
	}
	return s.registry.RenderBody(data), nil
}

// resolveCardLinks matches gallery cards without a persisted wedding link by
// couple name, using the same algorithm the provisioning path persists with.
// Matches come back keyed by card UID; the record itself is shared between
// renders (published records are served from a cache) and is never written to.
func (s *Service) resolveCardLinks(ctx context.Context, record *story.Story) map[string]uuid.UUID {
	if s.candidates == nil {
		return nil
	}

	var unlinked []story.Block
	for _, block := range record.Content.Blocks("body") {
		if block.Component() != render.ComponentLoveStories {
			continue
		}
		for _, card := range block.Blocks("galleries") {
			if card.UID() != "" && card.String("wedding_story") == "" && card.String("couple_names") != "" {
				unlinked = append(unlinked, card)
			}
		}
	}
	if len(unlinked) == 0 {
		return nil
	}

	candidates, err := s.candidates.Candidates(ctx)
	if err != nil {
		s.logger.Warn("pages.link.candidates_unavailable", "error", err)
		return nil
	}

	matches := make(map[string]uuid.UUID)
	for _, card := range unlinked {
		name := card.String("couple_names")
		if id, ok := linker.Match(name, candidates); ok {
			matches[card.UID()] = id
			s.logger.Debug("pages.link.matched", "name", name, "uuid", id.String())
		}
	}
	return matches
}

// collectLinkedIDs walks the page body for every UUID reference a section
// renderer will look up. Invalid UUID strings are dropped here rather than
// failing the batch.
func collectLinkedIDs(record *story.Story) []uuid.UUID {
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID

	add := func(raw string) {
		id, err := uuid.Parse(raw)
		if err != nil || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	for _, block := range record.Content.Blocks("body") {
		switch block.Component() {
		case render.ComponentLoveStories:
			for _, card := range block.Blocks("galleries") {
				if raw := card.String("wedding_story"); raw != "" {
					add(raw)
				}
			}
		case render.ComponentTestimonials:
			for _, raw := range block.Strings("deluxe_weddings") {
				add(raw)
			}
		case render.ComponentFeaturedWeddings:
			for _, raw := range block.Strings("featured_weddings") {
				add(raw)
			}
		}
	}
	return ids
}

// Package render turns resolved content blocks into page markup. One
// renderer exists per section type; each is a pure function of its resolved
// fields with a static default object as the final fallback tier, so a
// section renders valid output even when every optional CMS field is absent.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/resolver"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// Component tags recognised by the dispatch table.
const (
	ComponentPage             = "page"
	ComponentHero             = "home_hero_section"
	ComponentNavbar           = "navbar_section"
	ComponentAlternating      = "alternating_blocks_section"
	ComponentLoveStories      = "love_stories_gallery"
	ComponentTestimonials     = "testimonials_section"
	ComponentBrandSocialProof = "brand_social_proof"
	ComponentHistoryCarousel  = "history_carousel"
	ComponentScheduleForm     = "schedule_form"
	ComponentMapSection       = "map_section"
	ComponentFooter           = "footer_section"
	ComponentFeaturedWeddings = "featured_weddings_section"
	ComponentRealWedding      = "real_wedding"
)

// PageData carries everything a render pass needs: the page record itself
// and the linked records resolved for it, keyed by UUID string. Renderers
// read from it; they never fetch.
type PageData struct {
	Story   *story.Story
	Linked  map[string]*story.Story
	Version string

	// CardLinks holds wedding links matched at assemble time, keyed by card
	// UID. The page record may be shared between concurrent renders, so
	// matches ride alongside it instead of being written into it.
	CardLinks map[string]string
}

// LinkedRecord returns the linked record for a UUID string, nil when the
// link never resolved. Missing links are expected; callers fall back to stub
// fields.
func (d *PageData) LinkedRecord(id string) *story.Story {
	if d == nil || d.Linked == nil {
		return nil
	}
	return d.Linked[strings.TrimSpace(id)]
}

// CardLink returns the wedding UUID matched for a card at assemble time,
// empty when the card carries its own link or never matched.
func (d *PageData) CardLink(cardID string) string {
	if d == nil || d.CardLinks == nil {
		return ""
	}
	return d.CardLinks[cardID]
}

// RendererFunc renders one section block.
type RendererFunc func(reg *Registry, data *PageData, block story.Block) (template.HTML, error)

// Registry is the static dispatch table from component tag to renderer,
// constructed once at startup. Runtime registration is deliberately not
// supported; a fixed table avoids registration-order bugs.
type Registry struct {
	renderers map[string]RendererFunc
	resolver  *resolver.Resolver
	markdown  *MarkdownRenderer
	logger    interfaces.Logger
}

// Option mutates Registry construction.
type Option func(*Registry)

// WithLogger injects the render logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(reg *Registry) {
		if logger != nil {
			reg.logger = logger
		}
	}
}

// NewRegistry builds the dispatch table with every known section renderer.
func NewRegistry(fieldResolver *resolver.Resolver, opts ...Option) *Registry {
	if fieldResolver == nil {
		fieldResolver = resolver.New()
	}
	reg := &Registry{
		resolver: fieldResolver,
		markdown: NewMarkdownRenderer(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	reg.renderers = map[string]RendererFunc{
		ComponentHero:             renderHero,
		ComponentNavbar:           renderNavbar,
		ComponentAlternating:      renderAlternatingBlocks,
		ComponentLoveStories:      renderLoveStories,
		ComponentTestimonials:     renderTestimonials,
		ComponentBrandSocialProof: renderBrandSocialProof,
		ComponentHistoryCarousel:  renderHistoryCarousel,
		ComponentScheduleForm:     renderScheduleForm,
		ComponentMapSection:       renderMapSection,
		ComponentFooter:           renderFooter,
		ComponentFeaturedWeddings: renderFeaturedWeddings,
		ComponentRealWedding:      renderRealWedding,
	}
	return reg
}

// Resolver exposes the field resolver renderers share.
func (reg *Registry) Resolver() *resolver.Resolver {
	return reg.resolver
}

// Supports reports whether a component tag has a registered renderer.
func (reg *Registry) Supports(component string) bool {
	_, ok := reg.renderers[component]
	return ok
}

// RenderSection renders a single block. Unknown component tags are skipped
// with empty output rather than failing the page.
func (reg *Registry) RenderSection(data *PageData, block story.Block) (template.HTML, error) {
	component := block.Component()
	renderer, ok := reg.renderers[component]
	if !ok {
		reg.logger.Debug("render.section.unknown", "component", component)
		return "", nil
	}
	return renderer(reg, data, block)
}

// RenderBody renders every block of the page body in order. Failures are
// contained at the section boundary: a failing section degrades to an empty
// placeholder while its siblings render normally.
func (reg *Registry) RenderBody(data *PageData) template.HTML {
	if data == nil || data.Story == nil {
		return ""
	}

	var out strings.Builder
	for _, block := range data.Story.Content.Blocks("body") {
		html, err := reg.RenderSection(data, block)
		if err != nil {
			reg.logger.Warn("render.section.degraded",
				"component", block.Component(),
				"error", err,
			)
			out.WriteString(fmt.Sprintf("<!-- section %s unavailable -->", template.HTMLEscapeString(block.Component())))
			continue
		}
		out.WriteString(string(html))
	}
	return template.HTML(out.String())
}

func executeTemplate(tpl *template.Template, view any) (template.HTML, error) {
	var out strings.Builder
	if err := tpl.Execute(&out, view); err != nil {
		return "", fmt.Errorf("execute %s: %w", tpl.Name(), err)
	}
	return template.HTML(out.String()), nil
}

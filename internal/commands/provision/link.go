package provision

import (
	"context"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/commands"
	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const (
	linkGalleryOperation = "provision.link_gallery"

	defaultWeddingPrefix = "real-weddings"
)

var _ command.Commander[LinkGalleryCommand] = (*LinkGalleryHandler)(nil)

// LinkGalleryHandler matches the homepage gallery cards against the wedding
// records by couple name and persists the matches, so the render path finds
// its links already resolved. It runs the same matching algorithm the render
// path uses for its own fallback; the two call sites must never drift.
type LinkGalleryHandler struct {
	inner *commands.Handler[LinkGalleryCommand]
}

// NewLinkGalleryHandler binds the handler to a management API.
func NewLinkGalleryHandler(api ManagementAPI, logger interfaces.Logger, opts ...commands.HandlerOption[LinkGalleryCommand]) *LinkGalleryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg LinkGalleryCommand) error {
		prefix := strings.Trim(msg.WeddingPrefix, "/")
		if prefix == "" {
			prefix = defaultWeddingPrefix
		}

		candidates, err := listWeddingCandidates(ctx, api, prefix)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return fmt.Errorf("no wedding records under %s/", prefix)
		}

		page, err := findHomePage(ctx, api, msg.HomeSlug)
		if err != nil {
			return err
		}

		gallery := findGalleryBlock(page.Content)
		if gallery == nil {
			return fmt.Errorf("page %s has no gallery section", page.FullSlug)
		}

		stubs := collectStubs(gallery, msg.Relink)
		if len(stubs) == 0 {
			baseLogger.Info("provision.link.nothing_to_do", "page", page.FullSlug)
			return nil
		}

		links := linker.Link(stubs, candidates)
		var linked, unmatched int
		for _, card := range gallery.Blocks("galleries") {
			id, ok := links[card.UID()]
			if !ok {
				continue
			}
			if id == uuid.Nil {
				unmatched++
				baseLogger.Warn("provision.link.unmatched",
					"card", card.String("couple_names"),
				)
				continue
			}
			card["wedding_story"] = id.String()
			linked++
		}

		if msg.DryRun {
			baseLogger.Info("provision.link.dry_run",
				"page", page.FullSlug,
				"linked", linked,
				"unmatched", unmatched,
			)
			return nil
		}

		if err := api.UpdateStory(ctx, page.ID, page.Content, msg.Publish); err != nil {
			return fmt.Errorf("persist links on %s: %w", page.FullSlug, err)
		}
		baseLogger.Info("provision.link.completed",
			"page", page.FullSlug,
			"linked", linked,
			"unmatched", unmatched,
			"published", msg.Publish,
		)
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[LinkGalleryCommand]{
		commands.WithLogger[LinkGalleryCommand](baseLogger),
		commands.WithOperation[LinkGalleryCommand](linkGalleryOperation),
	}, opts...)

	return &LinkGalleryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *LinkGalleryHandler) Execute(ctx context.Context, msg LinkGalleryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func listWeddingCandidates(ctx context.Context, api ManagementAPI, prefix string) ([]linker.Candidate, error) {
	records, err := api.ListStories(ctx, story.ListStoriesOptions{StartsWith: prefix})
	if err != nil {
		return nil, err
	}
	candidates := make([]linker.Candidate, 0, len(records))
	for _, record := range records {
		if record == nil || record.UUID == uuid.Nil {
			continue
		}
		candidates = append(candidates, linker.Candidate{
			UUID: record.UUID,
			Slug: record.Slug,
			Name: record.Name,
		})
	}
	return candidates, nil
}

// findHomePage resolves the page to link: by slug when given, otherwise the
// space's start page.
func findHomePage(ctx context.Context, api ManagementAPI, homeSlug string) (*story.Story, error) {
	summaries, err := api.ListStories(ctx, story.ListStoriesOptions{})
	if err != nil {
		return nil, err
	}

	slug := strings.Trim(homeSlug, "/")
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		match := summary.IsStartpage
		if slug != "" {
			match = summary.Slug == slug || summary.FullSlug == slug
		}
		if !match {
			continue
		}
		return api.GetStory(ctx, summary.ID)
	}
	if slug == "" {
		return nil, fmt.Errorf("no start page found")
	}
	return nil, fmt.Errorf("page %q not found", slug)
}

func findGalleryBlock(content story.Block) story.Block {
	for _, block := range content.Blocks("body") {
		if block.Component() == "love_stories_gallery" {
			return block
		}
	}
	return nil
}

// collectStubs gathers the cards that need a link. Already-linked cards are
// skipped unless the run asks for a full relink.
func collectStubs(gallery story.Block, relink bool) []linker.Stub {
	var stubs []linker.Stub
	for _, card := range gallery.Blocks("galleries") {
		if !relink && card.String("wedding_story") != "" {
			continue
		}
		name := card.String("couple_names")
		if name == "" {
			continue
		}
		stubs = append(stubs, linker.Stub{ID: card.UID(), Name: name})
	}
	return stubs
}

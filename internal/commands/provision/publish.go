package provision

import (
	"context"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/rumriverbarn/venuesite/internal/commands"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const publishSetOperation = "provision.publish_set"

var _ command.Commander[PublishSetCommand] = (*PublishSetHandler)(nil)

// PublishSetHandler publishes a named set of stories. Failures are isolated
// per story; the run publishes everything it can and reports the rest.
type PublishSetHandler struct {
	inner *commands.Handler[PublishSetCommand]
}

// NewPublishSetHandler binds the handler to a management API.
func NewPublishSetHandler(api ManagementAPI, logger interfaces.Logger, opts ...commands.HandlerOption[PublishSetCommand]) *PublishSetHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg PublishSetCommand) error {
		wanted := map[string]bool{}
		for _, s := range msg.Slugs {
			if trimmed := strings.Trim(strings.TrimSpace(s), "/"); trimmed != "" {
				wanted[trimmed] = true
			}
		}

		summaries, err := api.ListStories(ctx, story.ListStoriesOptions{})
		if err != nil {
			return err
		}

		var published, failed int
		for _, summary := range summaries {
			if summary == nil {
				continue
			}
			slug := strings.Trim(summary.FullSlug, "/")
			if slug == "" {
				slug = summary.Slug
			}
			if !wanted[slug] {
				continue
			}
			delete(wanted, slug)

			if err := api.PublishStory(ctx, summary.ID); err != nil {
				failed++
				baseLogger.Error("provision.publish.failed", "slug", slug, "error", err)
				continue
			}
			published++
		}

		for slug := range wanted {
			failed++
			baseLogger.Warn("provision.publish.not_found", "slug", slug)
		}

		baseLogger.Info("provision.publish.completed", "published", published, "failed", failed)
		if failed > 0 {
			return fmt.Errorf("%d of %d stories failed to publish", failed, published+failed)
		}
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[PublishSetCommand]{
		commands.WithLogger[PublishSetCommand](baseLogger),
		commands.WithOperation[PublishSetCommand](publishSetOperation),
		commands.WithMessageFields(func(msg PublishSetCommand) map[string]any {
			return map[string]any{"slug_count": len(msg.Slugs)}
		}),
	}, opts...)

	return &PublishSetHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *PublishSetHandler) Execute(ctx context.Context, msg PublishSetCommand) error {
	return h.inner.Execute(ctx, msg)
}

package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	command "github.com/goliatone/go-command"

	"github.com/rumriverbarn/venuesite/internal/commands"
	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

const seedStoriesOperation = "provision.seed_stories"

var _ command.Commander[SeedStoriesCommand] = (*SeedStoriesHandler)(nil)

// seedDocument is one parsed seed file: a frontmatter header naming the
// story plus a markdown body that becomes the record's story text.
type seedDocument struct {
	Name      string         `yaml:"name"`
	Slug      string         `yaml:"slug"`
	Component string         `yaml:"component"`
	Fields    map[string]any `yaml:"fields"`

	body string
	path string
}

// SeedStoriesHandler upserts story records from local seed files. Existing
// records are matched by slug and updated; everything else is created.
type SeedStoriesHandler struct {
	inner *commands.Handler[SeedStoriesCommand]
}

// NewSeedStoriesHandler binds the handler to a management API.
func NewSeedStoriesHandler(api ManagementAPI, logger interfaces.Logger, opts ...commands.HandlerOption[SeedStoriesCommand]) *SeedStoriesHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SeedStoriesCommand) error {
		documents, err := loadSeedDocuments(msg.Directory)
		if err != nil {
			return err
		}
		if len(documents) == 0 {
			return fmt.Errorf("no seed files found under %s", msg.Directory)
		}

		prefix := strings.Trim(msg.Prefix, "/")
		existing, err := api.ListStories(ctx, story.ListStoriesOptions{StartsWith: prefix})
		if err != nil {
			return err
		}
		bySlug := map[string]*story.Story{}
		for _, record := range existing {
			if record == nil {
				continue
			}
			bySlug[record.Slug] = record
		}

		var created, updated int
		for _, doc := range documents {
			content := seedContent(doc)
			fullSlug := doc.Slug
			if prefix != "" {
				fullSlug = prefix + "/" + doc.Slug
			}

			if current, ok := bySlug[doc.Slug]; ok {
				if msg.DryRun {
					baseLogger.Info("provision.seed.would_update", "slug", fullSlug, "file", doc.path)
					continue
				}
				if err := api.UpdateStory(ctx, current.ID, content, msg.Publish); err != nil {
					return fmt.Errorf("update %s: %w", fullSlug, err)
				}
				updated++
				continue
			}

			if msg.DryRun {
				baseLogger.Info("provision.seed.would_create", "slug", fullSlug, "file", doc.path)
				continue
			}
			record := story.Story{
				Name:     doc.Name,
				Slug:     doc.Slug,
				FullSlug: fullSlug,
				Content:  content,
			}
			if _, err := api.CreateStory(ctx, record, msg.Publish); err != nil {
				return fmt.Errorf("create %s: %w", fullSlug, err)
			}
			created++
		}

		baseLogger.Info("provision.seed.completed",
			"created", created,
			"updated", updated,
			"dry_run", msg.DryRun,
		)
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[SeedStoriesCommand]{
		commands.WithLogger[SeedStoriesCommand](baseLogger),
		commands.WithOperation[SeedStoriesCommand](seedStoriesOperation),
		commands.WithMessageFields(func(msg SeedStoriesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Prefix != "" {
				fields["prefix"] = msg.Prefix
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}, opts...)

	return &SeedStoriesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *SeedStoriesHandler) Execute(ctx context.Context, msg SeedStoriesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// loadSeedDocuments parses every markdown seed file in a directory, sorted
// by filename so runs are deterministic.
func loadSeedDocuments(dir string) ([]*seedDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed directory: %w", err)
	}

	var documents []*seedDocument
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := parseSeedFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		documents = append(documents, doc)
	}
	sort.Slice(documents, func(i, j int) bool { return documents[i].path < documents[j].path })
	return documents, nil
}

func parseSeedFile(path string) (*seedDocument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	doc := &seedDocument{path: path}
	body, err := frontmatter.Parse(file, doc)
	if err != nil {
		return nil, err
	}
	doc.body = strings.TrimSpace(string(body))

	if doc.Name == "" {
		return nil, fmt.Errorf("seed file missing name")
	}
	// Derived slugs use the same normalization the gallery linker matches
	// on, so seeded records are linkable by name out of the box.
	if doc.Slug == "" {
		doc.Slug = linker.NormalizeName(doc.Name)
	}
	if doc.Component == "" {
		return nil, fmt.Errorf("seed file missing component")
	}
	return doc, nil
}

// seedContent builds the record content tree: the declared component tag,
// the frontmatter fields verbatim, and the markdown body as story text.
func seedContent(doc *seedDocument) story.Block {
	content := story.Block{"component": doc.Component}
	for key, value := range doc.Fields {
		content[key] = value
	}
	if doc.body != "" {
		content["story_text"] = doc.body
	}
	return content
}

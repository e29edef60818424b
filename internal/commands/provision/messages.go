// Package provision holds the operator commands that set up the content
// store: pushing component schemas, seeding story content from local files,
// linking gallery cards to wedding records, and publishing story sets.
package provision

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const (
	createComponentMessageType = "site.provision.create_component"
	seedStoriesMessageType     = "site.provision.seed_stories"
	linkGalleryMessageType     = "site.provision.link_gallery"
	publishSetMessageType      = "site.provision.publish_set"
)

// CreateComponentCommand pushes one component schema to the content store,
// updating in place when a component of the same name already exists.
type CreateComponentCommand struct {
	// Name is the component's machine tag, e.g. "love_stories_gallery".
	Name string `json:"name"`
	// DisplayName is the editor-facing label.
	DisplayName string `json:"display_name,omitempty"`
	// Schema is the component field schema pushed verbatim after local
	// validation.
	Schema map[string]any `json:"schema"`
	// IsRoot marks the component as usable as a page root.
	IsRoot bool `json:"is_root,omitempty"`
	// IsNestable marks the component as embeddable inside other blocks.
	IsNestable bool `json:"is_nestable,omitempty"`
}

// Type implements command.Message.
func (CreateComponentCommand) Type() string { return createComponentMessageType }

// Validate ensures the component has a usable name and a schema body.
func (cmd CreateComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Name, validation.Required, validation.By(func(value any) error {
			name := strings.TrimSpace(value.(string))
			if name == "" {
				return validation.NewError("site.provision.create_component.name_required", "component name is required")
			}
			normalized, err := slug.Normalize(name)
			if err != nil || !slug.IsValid(normalized) {
				return validation.NewError("site.provision.create_component.name_invalid", "component name must normalize to a valid slug")
			}
			return nil
		})),
		validation.Field(&cmd.Schema, validation.By(func(value any) error {
			schema, _ := value.(map[string]any)
			if len(schema) == 0 {
				return validation.NewError("site.provision.create_component.schema_required", "component schema is required")
			}
			return nil
		})),
	)
}

// SeedStoriesCommand loads story seed files from a local directory and
// upserts each into the content store. Seed files are markdown with a
// frontmatter header naming the story and its component fields.
type SeedStoriesCommand struct {
	// Directory selects the filesystem path holding seed files.
	Directory string `json:"directory"`
	// Prefix is the folder slug created records live under, e.g.
	// "real-weddings". Empty seeds at the space root.
	Prefix string `json:"prefix,omitempty"`
	// Publish publishes each seeded story in the same call.
	Publish bool `json:"publish,omitempty"`
	// DryRun reports what would change without writing.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SeedStoriesCommand) Type() string { return seedStoriesMessageType }

// Validate ensures a seed directory is present.
func (cmd SeedStoriesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("site.provision.seed_stories.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// LinkGalleryCommand matches homepage gallery cards to wedding records by
// couple name and persists the discovered links back to the content store.
type LinkGalleryCommand struct {
	// HomeSlug addresses the page whose gallery is linked. Defaults to the
	// space's start page when empty.
	HomeSlug string `json:"home_slug,omitempty"`
	// WeddingPrefix is the folder slug wedding records live under.
	WeddingPrefix string `json:"wedding_prefix,omitempty"`
	// Relink re-matches cards that already carry a link.
	Relink bool `json:"relink,omitempty"`
	// Publish publishes the page after writing the links.
	Publish bool `json:"publish,omitempty"`
	// DryRun reports the matches without writing.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (LinkGalleryCommand) Type() string { return linkGalleryMessageType }

// Validate implements command.Message. Every field has a default.
func (LinkGalleryCommand) Validate() error { return nil }

// PublishSetCommand publishes a named set of stories by full slug.
type PublishSetCommand struct {
	// Slugs lists the full slugs to publish.
	Slugs []string `json:"slugs"`
}

// Type implements command.Message.
func (PublishSetCommand) Type() string { return publishSetMessageType }

// Validate ensures at least one slug is named.
func (cmd PublishSetCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slugs, validation.By(func(value any) error {
			slugs, _ := value.([]string)
			for _, s := range slugs {
				if strings.TrimSpace(s) != "" {
					return nil
				}
			}
			return validation.NewError("site.provision.publish_set.slugs_required", "at least one slug is required")
		})),
	)
}

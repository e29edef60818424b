package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/story"
)

type fakeManagement struct {
	components []*story.Component
	stories    []*story.Story

	createdComponents []story.Component
	updatedComponents map[int64]story.Component
	createdStories    []story.Story
	updatedStories    map[int64]story.Block
	updatePublish     map[int64]bool
	publishedIDs      []int64

	listStoriesErr error
	publishErr     map[int64]error
}

func newFakeManagement() *fakeManagement {
	return &fakeManagement{
		updatedComponents: map[int64]story.Component{},
		updatedStories:    map[int64]story.Block{},
		updatePublish:     map[int64]bool{},
		publishErr:        map[int64]error{},
	}
}

func (f *fakeManagement) ListComponents(ctx context.Context) ([]*story.Component, error) {
	return f.components, nil
}

func (f *fakeManagement) CreateComponent(ctx context.Context, component story.Component) (*story.Component, error) {
	f.createdComponents = append(f.createdComponents, component)
	created := component
	created.ID = int64(len(f.createdComponents))
	return &created, nil
}

func (f *fakeManagement) UpdateComponent(ctx context.Context, id int64, component story.Component) error {
	f.updatedComponents[id] = component
	return nil
}

func (f *fakeManagement) ListStories(ctx context.Context, opts story.ListStoriesOptions) ([]*story.Story, error) {
	if f.listStoriesErr != nil {
		return nil, f.listStoriesErr
	}
	if opts.StartsWith == "" {
		return f.stories, nil
	}
	var out []*story.Story
	for _, record := range f.stories {
		if record == nil {
			continue
		}
		if len(record.FullSlug) >= len(opts.StartsWith) && record.FullSlug[:len(opts.StartsWith)] == opts.StartsWith {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeManagement) GetStory(ctx context.Context, id int64) (*story.Story, error) {
	for _, record := range f.stories {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, &story.NotFoundError{Identifier: "id"}
}

func (f *fakeManagement) CreateStory(ctx context.Context, record story.Story, publish bool) (*story.Story, error) {
	f.createdStories = append(f.createdStories, record)
	created := record
	created.ID = int64(1000 + len(f.createdStories))
	return &created, nil
}

func (f *fakeManagement) UpdateStory(ctx context.Context, id int64, content story.Block, publish bool) error {
	f.updatedStories[id] = content
	f.updatePublish[id] = publish
	return nil
}

func (f *fakeManagement) PublishStory(ctx context.Context, id int64) error {
	if err, ok := f.publishErr[id]; ok {
		return err
	}
	f.publishedIDs = append(f.publishedIDs, id)
	return nil
}

func validSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"couple_names": map[string]any{"type": "string"},
		},
	}
}

func TestCreateComponentValidatesName(t *testing.T) {
	handler := NewCreateComponentHandler(newFakeManagement(), nil)

	err := handler.Execute(context.Background(), CreateComponentCommand{Schema: validSchema()})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestCreateComponentRejectsUncompilableSchema(t *testing.T) {
	api := newFakeManagement()
	handler := NewCreateComponentHandler(api, nil)

	err := handler.Execute(context.Background(), CreateComponentCommand{
		Name:   "love_stories_gallery",
		Schema: map[string]any{"type": 42},
	})
	if err == nil {
		t.Fatal("expected schema compile error")
	}
	if len(api.createdComponents) != 0 {
		t.Fatal("broken schema must never reach the store")
	}
}

func TestCreateComponentCreatesNew(t *testing.T) {
	api := newFakeManagement()
	handler := NewCreateComponentHandler(api, nil)

	err := handler.Execute(context.Background(), CreateComponentCommand{
		Name:   "love_stories_gallery",
		Schema: validSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.createdComponents) != 1 {
		t.Fatalf("expected one created component, got %d", len(api.createdComponents))
	}
}

func TestCreateComponentUpdatesExisting(t *testing.T) {
	api := newFakeManagement()
	api.components = []*story.Component{{ID: 7, Name: "love_stories_gallery"}}
	handler := NewCreateComponentHandler(api, nil)

	err := handler.Execute(context.Background(), CreateComponentCommand{
		Name:   "love_stories_gallery",
		Schema: validSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.createdComponents) != 0 {
		t.Fatal("existing component must be updated, not duplicated")
	}
	if _, ok := api.updatedComponents[7]; !ok {
		t.Fatal("expected update on existing component id")
	}
}

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
}

func TestSeedStoriesCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, "emily.md", `---
name: Emily & Barron Nixon
component: real_wedding
fields:
  location: Rum River Barn
---
A **beautiful** celebration by the river.
`)
	writeSeedFile(t, dir, "mattea.md", `---
name: Mattea Courtney
slug: mattea-courtney
component: real_wedding
---
`)

	api := newFakeManagement()
	api.stories = []*story.Story{
		{ID: 42, Slug: "mattea-courtney", FullSlug: "real-weddings/mattea-courtney"},
	}
	handler := NewSeedStoriesHandler(api, nil)

	err := handler.Execute(context.Background(), SeedStoriesCommand{
		Directory: dir,
		Prefix:    "real-weddings",
		Publish:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.createdStories) != 1 {
		t.Fatalf("expected one created story, got %d", len(api.createdStories))
	}
	created := api.createdStories[0]
	if created.Slug != "emily-and-barron-nixon" {
		t.Fatalf("slug should derive from the name, got %q", created.Slug)
	}
	if created.FullSlug != "real-weddings/emily-and-barron-nixon" {
		t.Fatalf("unexpected full slug %q", created.FullSlug)
	}
	if created.Content.String("location") != "Rum River Barn" {
		t.Fatalf("frontmatter fields should carry over, got %v", created.Content)
	}
	if created.Content.String("story_text") == "" {
		t.Fatal("markdown body should become story text")
	}

	if _, ok := api.updatedStories[42]; !ok {
		t.Fatal("existing record should be updated by slug")
	}
	if !api.updatePublish[42] {
		t.Fatal("publish flag should propagate to updates")
	}
}

func TestSeedStoriesToleratesSparseListing(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, "emily.md", `---
name: Emily
component: real_wedding
---
`)

	api := newFakeManagement()
	api.stories = []*story.Story{
		nil,
		{ID: 7, Slug: "emily", FullSlug: "emily"},
	}
	handler := NewSeedStoriesHandler(api, nil)

	if err := handler.Execute(context.Background(), SeedStoriesCommand{Directory: dir}); err != nil {
		t.Fatalf("nil listing entries must be skipped, got: %v", err)
	}
	if _, ok := api.updatedStories[7]; !ok {
		t.Fatal("existing record should still match by slug")
	}
}

func TestSeedStoriesDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, "emily.md", `---
name: Emily
component: real_wedding
---
`)

	api := newFakeManagement()
	handler := NewSeedStoriesHandler(api, nil)

	err := handler.Execute(context.Background(), SeedStoriesCommand{Directory: dir, DryRun: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.createdStories) != 0 || len(api.updatedStories) != 0 {
		t.Fatal("dry run must not write")
	}
}

func TestSeedStoriesRequiresDirectory(t *testing.T) {
	handler := NewSeedStoriesHandler(newFakeManagement(), nil)

	err := handler.Execute(context.Background(), SeedStoriesCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func galleryHomePage(cards ...map[string]any) *story.Story {
	anyCards := make([]any, len(cards))
	for i, c := range cards {
		anyCards[i] = c
	}
	return &story.Story{
		ID:          1,
		Slug:        "home",
		FullSlug:    "home",
		IsStartpage: true,
		Content: story.Block{
			"component": "page",
			"body": []any{
				map[string]any{
					"component": "love_stories_gallery",
					"galleries": anyCards,
				},
			},
		},
	}
}

func TestLinkGalleryPersistsMatches(t *testing.T) {
	emilyID := uuid.New()
	matteaID := uuid.New()

	api := newFakeManagement()
	api.stories = []*story.Story{
		galleryHomePage(
			map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
			map[string]any{"_uid": "card-2", "couple_names": "Mattea Courtney"},
			map[string]any{"_uid": "card-3", "couple_names": "Nobody Matches This"},
		),
		{ID: 10, UUID: emilyID, Name: "Emily & Barron Nixon", Slug: "emily-and-barron-nixon", FullSlug: "real-weddings/emily-and-barron-nixon"},
		{ID: 11, UUID: matteaID, Name: "Mattea Courtney Wedding", Slug: "mattea-courtney-wedding", FullSlug: "real-weddings/mattea-courtney-wedding"},
	}
	handler := NewLinkGalleryHandler(api, nil)

	err := handler.Execute(context.Background(), LinkGalleryCommand{Publish: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, ok := api.updatedStories[1]
	if !ok {
		t.Fatal("homepage should be written back")
	}
	if !api.updatePublish[1] {
		t.Fatal("publish flag should propagate")
	}

	cards := content.Blocks("body")[0].Blocks("galleries")
	if got := cards[0].String("wedding_story"); got != emilyID.String() {
		t.Fatalf("card 1 should link to emily record, got %q", got)
	}
	if got := cards[1].String("wedding_story"); got != matteaID.String() {
		t.Fatalf("card 2 should link by substring match, got %q", got)
	}
	if got := cards[2].String("wedding_story"); got != "" {
		t.Fatalf("unmatched card must stay unlinked, got %q", got)
	}
}

func TestLinkGallerySkipsAlreadyLinkedCards(t *testing.T) {
	existingID := uuid.New()
	weddingID := uuid.New()

	api := newFakeManagement()
	api.stories = []*story.Story{
		galleryHomePage(
			map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon", "wedding_story": existingID.String()},
		),
		{ID: 10, UUID: weddingID, Name: "Emily & Barron Nixon", Slug: "emily-and-barron-nixon", FullSlug: "real-weddings/emily-and-barron-nixon"},
	}
	handler := NewLinkGalleryHandler(api, nil)

	if err := handler.Execute(context.Background(), LinkGalleryCommand{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.updatedStories) != 0 {
		t.Fatal("nothing to link, nothing should be written")
	}
}

func TestLinkGalleryDryRunWritesNothing(t *testing.T) {
	weddingID := uuid.New()
	api := newFakeManagement()
	api.stories = []*story.Story{
		galleryHomePage(
			map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
		),
		{ID: 10, UUID: weddingID, Name: "Emily & Barron Nixon", Slug: "emily-and-barron-nixon", FullSlug: "real-weddings/emily-and-barron-nixon"},
	}
	handler := NewLinkGalleryHandler(api, nil)

	if err := handler.Execute(context.Background(), LinkGalleryCommand{DryRun: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.updatedStories) != 0 {
		t.Fatal("dry run must not write")
	}
}

func TestPublishSetIsolatesFailures(t *testing.T) {
	api := newFakeManagement()
	api.stories = []*story.Story{
		{ID: 1, Slug: "home", FullSlug: "home"},
		{ID: 2, Slug: "about", FullSlug: "about"},
	}
	api.publishErr[2] = errors.New("locked")
	handler := NewPublishSetHandler(api, nil)

	err := handler.Execute(context.Background(), PublishSetCommand{Slugs: []string{"home", "about", "missing"}})
	if err == nil {
		t.Fatal("expected aggregate failure")
	}
	if len(api.publishedIDs) != 1 || api.publishedIDs[0] != 1 {
		t.Fatalf("healthy story should still publish, got %v", api.publishedIDs)
	}
}

func TestPublishSetRequiresSlugs(t *testing.T) {
	handler := NewPublishSetHandler(newFakeManagement(), nil)

	err := handler.Execute(context.Background(), PublishSetCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

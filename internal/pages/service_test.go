package pages

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/render"
	"github.com/rumriverbarn/venuesite/internal/resolver"
	"github.com/rumriverbarn/venuesite/internal/story"
)

type stubClient struct {
	mu        sync.Mutex
	pages     map[string]*story.Story
	linked    map[uuid.UUID]*story.Story
	errors    map[uuid.UUID]error
	pageErr   error
	batchIDs  []uuid.UUID
	pageCalls int
}

func (c *stubClient) GetStory(ctx context.Context, slug, version string) (*story.Story, error) {
	c.mu.Lock()
	c.pageCalls++
	c.mu.Unlock()
	if c.pageErr != nil {
		return nil, c.pageErr
	}
	record, ok := c.pages[slug]
	if !ok {
		return nil, &story.NotFoundError{Identifier: slug, Version: version}
	}
	return record, nil
}

func (c *stubClient) GetStoriesByUUIDs(ctx context.Context, ids []uuid.UUID, version string) (map[uuid.UUID]*story.Story, map[uuid.UUID]error) {
	c.mu.Lock()
	c.batchIDs = append(c.batchIDs, ids...)
	c.mu.Unlock()
	found := map[uuid.UUID]*story.Story{}
	failures := map[uuid.UUID]error{}
	for _, id := range ids {
		if err, ok := c.errors[id]; ok {
			failures[id] = err
			continue
		}
		if record, ok := c.linked[id]; ok {
			found[id] = record
		} else {
			failures[id] = &story.NotFoundError{Identifier: id.String(), Version: version}
		}
	}
	return found, failures
}

type stubCandidates struct {
	mu         sync.Mutex
	candidates []linker.Candidate
	err        error
	calls      int
}

func (s *stubCandidates) Candidates(ctx context.Context) ([]linker.Candidate, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.candidates, s.err
}

func weddingRecord(id uuid.UUID, names string) *story.Story {
	return &story.Story{
		UUID:     id,
		FullSlug: "real-weddings/" + strings.ToLower(strings.ReplaceAll(names, " ", "-")),
		Content:  story.Block{"component": "real_wedding", "couple_names": names},
	}
}

func homePage(body ...map[string]any) *story.Story {
	blocks := make([]any, len(body))
	for i, b := range body {
		blocks[i] = b
	}
	return &story.Story{
		Slug:     "home",
		FullSlug: "home",
		Content:  story.Block{"component": "page", "body": blocks},
	}
}

func TestGetPageCollectsLinksAcrossSectionKinds(t *testing.T) {
	galleryID := uuid.New()
	deluxeID := uuid.New()
	featuredID := uuid.New()

	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"wedding_story": galleryID.String()},
					},
				},
				map[string]any{
					"component":       render.ComponentTestimonials,
					"deluxe_weddings": []any{deluxeID.String()},
				},
				map[string]any{
					"component":         render.ComponentFeaturedWeddings,
					"featured_weddings": []any{featuredID.String()},
				},
			),
		},
		linked: map[uuid.UUID]*story.Story{
			galleryID:  weddingRecord(galleryID, "Emily Barron"),
			deluxeID:   weddingRecord(deluxeID, "Mattea Courtney"),
			featuredID: weddingRecord(featuredID, "Sarah Mike"),
		},
	}

	service := NewService(client, render.NewRegistry(resolver.New()))
	data, err := service.GetPage(context.Background(), "home", "published")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.batchIDs) != 3 {
		t.Fatalf("expected 3 collected UUIDs, got %d", len(client.batchIDs))
	}
	for _, id := range []uuid.UUID{galleryID, deluxeID, featuredID} {
		if data.LinkedRecord(id.String()) == nil {
			t.Fatalf("missing linked record %s", id)
		}
	}
}

func TestGetPageDuplicateAndInvalidIDs(t *testing.T) {
	id := uuid.New()
	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"wedding_story": id.String()},
						map[string]any{"wedding_story": id.String()},
						map[string]any{"wedding_story": "not-a-uuid"},
					},
				},
			),
		},
		linked: map[uuid.UUID]*story.Story{id: weddingRecord(id, "Emily Barron")},
	}

	service := NewService(client, render.NewRegistry(resolver.New()))
	if _, err := service.GetPage(context.Background(), "home", "published"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.batchIDs) != 1 {
		t.Fatalf("expected deduplicated single UUID, got %v", client.batchIDs)
	}
}

func TestGetPagePartialLinkFailureDegradesOnly(t *testing.T) {
	okID := uuid.New()
	badID := uuid.New()

	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"wedding_story": okID.String()},
						map[string]any{"wedding_story": badID.String(), "couple_names": "Broken Pair"},
					},
				},
			),
		},
		linked: map[uuid.UUID]*story.Story{okID: weddingRecord(okID, "Emily Barron")},
		errors: map[uuid.UUID]error{badID: errors.New("upstream timeout")},
	}

	service := NewService(client, render.NewRegistry(resolver.New()))
	data, err := service.GetPage(context.Background(), "home", "published")
	if err != nil {
		t.Fatalf("partial failure must not fail the page: %v", err)
	}
	if data.LinkedRecord(okID.String()) == nil {
		t.Fatal("healthy link should resolve")
	}
	if data.LinkedRecord(badID.String()) != nil {
		t.Fatal("failed link should be absent, not present")
	}

	html := render.NewRegistry(resolver.New()).RenderBody(data)
	if !strings.Contains(string(html), "Broken Pair") {
		t.Fatalf("degraded card should render from stub fields, got: %s", html)
	}
}

func TestGetPagePropagatesPageFetchError(t *testing.T) {
	client := &stubClient{pages: map[string]*story.Story{}}
	service := NewService(client, render.NewRegistry(resolver.New()))

	_, err := service.GetPage(context.Background(), "missing", "published")
	if !errors.Is(err, story.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRenderTimeLinkResolutionFillsMissingLinks(t *testing.T) {
	weddingID := uuid.New()
	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
					},
				},
			),
		},
		linked: map[uuid.UUID]*story.Story{
			weddingID: weddingRecord(weddingID, "Emily & Barron Nixon"),
		},
	}
	source := &stubCandidates{
		candidates: []linker.Candidate{
			{UUID: weddingID, Slug: "emily-and-barron-nixon", Name: "Emily & Barron Nixon"},
		},
	}

	service := NewService(client, render.NewRegistry(resolver.New()), WithCandidateSource(source))
	data, err := service.GetPage(context.Background(), "home", "published")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one candidate listing, got %d", source.calls)
	}
	if data.LinkedRecord(weddingID.String()) == nil {
		t.Fatal("matched wedding should be fetched and linked")
	}
	if got := data.CardLink("card-1"); got != weddingID.String() {
		t.Fatalf("expected card link %s, got %q", weddingID, got)
	}
}

func TestRenderTimeLinkResolutionSkippedWhenAllLinked(t *testing.T) {
	id := uuid.New()
	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"wedding_story": id.String(), "couple_names": "Emily"},
					},
				},
			),
		},
		linked: map[uuid.UUID]*story.Story{id: weddingRecord(id, "Emily")},
	}
	source := &stubCandidates{}

	service := NewService(client, render.NewRegistry(resolver.New()), WithCandidateSource(source))
	if _, err := service.GetPage(context.Background(), "home", "published"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.calls != 0 {
		t.Fatalf("candidate listing should be skipped, got %d calls", source.calls)
	}
}

func TestAssembleLeavesSharedRecordUntouched(t *testing.T) {
	weddingID := uuid.New()
	record := homePage(
		map[string]any{
			"component": render.ComponentLoveStories,
			"galleries": []any{
				map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
			},
		},
	)
	client := &stubClient{
		linked: map[uuid.UUID]*story.Story{
			weddingID: weddingRecord(weddingID, "Emily & Barron Nixon"),
		},
	}
	source := &stubCandidates{
		candidates: []linker.Candidate{
			{UUID: weddingID, Slug: "emily-and-barron-nixon", Name: "Emily & Barron Nixon"},
		},
	}

	registry := render.NewRegistry(resolver.New())
	service := NewService(client, registry, WithCandidateSource(source))
	data := service.Assemble(context.Background(), record, "published")

	card := record.Content.Blocks("body")[0].Blocks("galleries")[0]
	if got := card.String("wedding_story"); got != "" {
		t.Fatalf("record mutated in place: wedding_story=%q", got)
	}
	if got := data.CardLink("card-1"); got != weddingID.String() {
		t.Fatalf("expected card link %s, got %q", weddingID, got)
	}

	html := string(registry.RenderBody(data))
	if !strings.Contains(html, weddingID.String()) {
		t.Fatalf("rendered card should carry the matched wedding, got: %s", html)
	}
	if strings.Contains(html, "gallery-item-unlinked") {
		t.Fatalf("matched card should not render as unlinked, got: %s", html)
	}
}

func TestAssembleConcurrentOnSharedRecord(t *testing.T) {
	weddingID := uuid.New()
	record := homePage(
		map[string]any{
			"component": render.ComponentLoveStories,
			"galleries": []any{
				map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
			},
		},
	)
	client := &stubClient{
		linked: map[uuid.UUID]*story.Story{
			weddingID: weddingRecord(weddingID, "Emily & Barron Nixon"),
		},
	}
	source := &stubCandidates{
		candidates: []linker.Candidate{
			{UUID: weddingID, Slug: "emily-and-barron-nixon", Name: "Emily & Barron Nixon"},
		},
	}

	// Published records are served from a shared cache, so two requests may
	// assemble the same record at once. Nothing here may write into it.
	serviceA := NewService(client, render.NewRegistry(resolver.New()), WithCandidateSource(source))
	serviceB := NewService(client, render.NewRegistry(resolver.New()), WithCandidateSource(source))

	var wg sync.WaitGroup
	results := make([]*render.PageData, 2)
	for i, service := range []*Service{serviceA, serviceB} {
		wg.Add(1)
		go func(i int, service *Service) {
			defer wg.Done()
			results[i] = service.Assemble(context.Background(), record, "published")
		}(i, service)
	}
	wg.Wait()

	card := record.Content.Blocks("body")[0].Blocks("galleries")[0]
	if got := card.String("wedding_story"); got != "" {
		t.Fatalf("shared record mutated during concurrent assembly: %q", got)
	}
	for i, data := range results {
		if data.CardLink("card-1") != weddingID.String() {
			t.Fatalf("assembly %d missing card link", i)
		}
	}
}

func TestCandidateSourceFailureLeavesCardsUnlinked(t *testing.T) {
	client := &stubClient{
		pages: map[string]*story.Story{
			"home": homePage(
				map[string]any{
					"component": render.ComponentLoveStories,
					"galleries": []any{
						map[string]any{"_uid": "card-1", "couple_names": "Emily & Barron Nixon"},
					},
				},
			),
		},
	}
	source := &stubCandidates{err: errors.New("listing down")}

	service := NewService(client, render.NewRegistry(resolver.New()), WithCandidateSource(source))
	data, err := service.GetPage(context.Background(), "home", "published")
	if err != nil {
		t.Fatalf("candidate failure must not fail the page: %v", err)
	}
	if len(data.Linked) != 0 {
		t.Fatalf("no links expected, got %d", len(data.Linked))
	}
}

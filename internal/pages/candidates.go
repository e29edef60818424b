package pages

import (
	"context"

	"github.com/google/uuid"

	"github.com/rumriverbarn/venuesite/internal/linker"
	"github.com/rumriverbarn/venuesite/internal/story"
)

// StoryLister is the slice of the content store client the wedding candidate
// source needs.
type StoryLister interface {
	ListStories(ctx context.Context, prefix, version string) ([]*story.Story, error)
}

// WeddingCandidates lists the wedding records under a folder prefix as match
// candidates for render-time gallery linking. It produces the same candidate
// shape the provisioning link command builds, so both paths match identically.
type WeddingCandidates struct {
	lister  StoryLister
	prefix  string
	version string
}

// NewWeddingCandidates builds a candidate source over a story listing client.
func NewWeddingCandidates(lister StoryLister, prefix, version string) *WeddingCandidates {
	return &WeddingCandidates{
		lister:  lister,
		prefix:  prefix,
		version: version,
	}
}

// Candidates implements CandidateSource.
func (w *WeddingCandidates) Candidates(ctx context.Context) ([]linker.Candidate, error) {
	records, err := w.lister.ListStories(ctx, w.prefix, w.version)
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

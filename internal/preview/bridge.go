// Package preview keeps an editable page view synchronized with the content
// store while an external editor is attached. A Session owns the current
// content snapshot and reconciles two update paths: optimistic snapshots
// carried on editor events, and authoritative server re-fetches triggered by
// those same events.
package preview

import (
	"context"
	"sync"
	"time"

	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/internal/story"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// State of a preview session.
type State string

const (
	// StateIdle means no snapshot has been loaded yet.
	StateIdle State = "idle"
	// StateLoaded means a snapshot is present but no editor is attached.
	StateLoaded State = "loaded"
	// StateLive means an editor bridge is attached and emitting events.
	StateLive State = "live"
)

// Event kinds that trigger reconciliation. Anything else is ignored.
const (
	EventInput     = "input"
	EventChange    = "change"
	EventPublished = "published"
)

// Event is one message from the editor bridge. Story is optional; events
// without a snapshot still trigger the authoritative re-fetch.
type Event struct {
	Kind  string
	Story *story.Story
}

// Source is an attached editor bridge delivering events until it closes its
// channel or the session tears down.
type Source interface {
	Events() <-chan Event
}

// Locator finds the editor bridge. The editor may attach at an arbitrary
// later time, so a false result is not an error; the session keeps asking.
type Locator interface {
	Locate(ctx context.Context) (Source, bool)
}

// Fetcher loads the authoritative server view of the page.
type Fetcher interface {
	Fetch(ctx context.Context) (*story.Story, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (*story.Story, error)

func (f FetcherFunc) Fetch(ctx context.Context) (*story.Story, error) { return f(ctx) }

const defaultLocateInterval = 500 * time.Millisecond

// Session is the preview state machine. Snapshots are always replaced
// wholesale, never merged, so readers only need the one mutex around the
// pointer swap.
type Session struct {
	fetcher        Fetcher
	locator        Locator
	locateInterval time.Duration
	logger         interfaces.Logger
	onUpdate       func(*story.Story)

	mu       sync.Mutex
	state    State
	snapshot *story.Story

	// fetchSeq numbers re-fetches as they start; appliedSeq records the
	// newest one whose result has been applied. A slow fetch that finishes
	// after a newer one is discarded, so the most recent server fetch wins
	// regardless of completion order.
	fetchSeq   uint64
	appliedSeq uint64

	refetchWG sync.WaitGroup
}

// SessionOption mutates Session construction.
type SessionOption func(*Session)

// WithLocateInterval overrides the fixed retry interval used while waiting
// for the editor bridge to appear.
func WithLocateInterval(interval time.Duration) SessionOption {
	return func(s *Session) {
		if interval > 0 {
			s.locateInterval = interval
		}
	}
}

// WithLogger injects the preview logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnUpdate registers a callback invoked after every snapshot replacement,
// optimistic or authoritative. Callers use it to re-render.
func WithOnUpdate(fn func(*story.Story)) SessionOption {
	return func(s *Session) {
		s.onUpdate = fn
	}
}

// NewSession builds an idle session.
func NewSession(fetcher Fetcher, locator Locator, opts ...SessionOption) *Session {
	s := &Session{
		fetcher:        fetcher,
		locator:        locator,
		locateInterval: defaultLocateInterval,
		logger:         logging.NoOp(),
		state:          StateIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current content snapshot, nil while idle.
func (s *Session) Snapshot() *story.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Load performs the initial fetch and moves the session from Idle to Loaded.
func (s *Session) Load(ctx context.Context) error {
	record, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = record
	if s.state == StateIdle {
		s.state = StateLoaded
	}
	s.mu.Unlock()

	s.notify(record)
	return nil
}

// Run attaches to the editor bridge and processes events until ctx is
// cancelled or the bridge closes its event channel. The locate step retries
// on a fixed interval for as long as ctx lives; the editor attaching late is
// the normal case, not a failure. On return the session detaches back to
// Loaded and all in-flight re-fetches have settled.
func (s *Session) Run(ctx context.Context) error {
	source, err := s.waitForBridge(ctx)
	if err != nil {
		return err
	}

	s.setState(StateLive)
	s.logger.Debug("preview.bridge.attached")

	defer func() {
		s.refetchWG.Wait()
		s.setState(StateLoaded)
		s.logger.Debug("preview.bridge.detached")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-source.Events():
			if !ok {
				return nil
			}
			s.handleEvent(ctx, event)
		}
	}
}

func (s *Session) waitForBridge(ctx context.Context) (Source, error) {
	if source, ok := s.locator.Locate(ctx); ok {
		return source, nil
	}

	ticker := time.NewTicker(s.locateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if source, ok := s.locator.Locate(ctx); ok {
				return source, nil
			}
		}
	}
}

// handleEvent applies a qualifying event: an optimistic snapshot replacement
// when the payload carries one, then the authoritative re-fetch in every
// case. The optimistic path never substitutes for the re-fetch; the server
// holds computed state the editor payload cannot carry.
func (s *Session) handleEvent(ctx context.Context, event Event) {
	switch event.Kind {
	case EventInput, EventChange, EventPublished:
	default:
		s.logger.Trace("preview.event.ignored", "kind", event.Kind)
		return
	}

	if event.Story != nil {
		s.replaceSnapshot(event.Story)
		s.logger.Debug("preview.snapshot.optimistic", "kind", event.Kind)
	}

	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.mu.Unlock()

	s.refetchWG.Add(1)
	go func() {
		defer s.refetchWG.Done()
		record, err := s.fetcher.Fetch(ctx)
		if err != nil {
			s.logger.Warn("preview.refetch.failed", "kind", event.Kind, "error", err)
			return
		}
		if s.applyFetched(seq, record) {
			s.notify(record)
		}
	}()
}

func (s *Session) replaceSnapshot(record *story.Story) {
	s.mu.Lock()
	s.snapshot = record
	s.mu.Unlock()
	s.notify(record)
}

// applyFetched installs a server fetch result unless a newer fetch already
// landed.
func (s *Session) applyFetched(seq uint64, record *story.Story) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq
	s.snapshot = record
	return true
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Session) notify(record *story.Story) {
	if s.onUpdate != nil {
		s.onUpdate(record)
	}
}

// Package gallery holds the overlay state machine behind the wedding photo
// viewer: an open/closed modal with a scroll lock side effect, incremental
// photo reveal, and a single-image lightbox sub-state.
package gallery

import (
	"github.com/rumriverbarn/venuesite/internal/logging"
	"github.com/rumriverbarn/venuesite/pkg/interfaces"
)

// State of the modal.
type State string

const (
	// StateClosed means no overlay is visible.
	StateClosed State = "closed"
	// StateOpen means the photo viewer overlay is visible and page scroll
	// is suppressed.
	StateOpen State = "open"
)

// Reveal pagination. The first batch shows immediately; each load-more step
// reveals another increment.
const (
	initialRevealCount = 15
	revealStep         = 12
)

// ScrollLocker suppresses and restores page background scrolling.
type ScrollLocker interface {
	Lock()
	Unlock()
}

// NoopScrollLocker satisfies ScrollLocker without side effects.
type NoopScrollLocker struct{}

func (NoopScrollLocker) Lock()   {}
func (NoopScrollLocker) Unlock() {}

// Controller drives one gallery modal. It is single-threaded by contract,
// matching the event-driven surface it models; callers serialize access.
type Controller struct {
	locker ScrollLocker
	logger interfaces.Logger

	state    State
	photos   []string
	revealed int

	lightboxOpen  bool
	lightboxIndex int

	// scrollLocked tracks whether the lock side effect is currently held,
	// so every exit path can revert it exactly once.
	scrollLocked bool
}

// Option mutates Controller construction.
type Option func(*Controller)

// WithScrollLocker injects the scroll lock side effect.
func WithScrollLocker(locker ScrollLocker) Option {
	return func(c *Controller) {
		if locker != nil {
			c.locker = locker
		}
	}
}

// WithLogger injects the gallery logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController builds a closed controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		locker: NoopScrollLocker{},
		logger: logging.NoOp(),
		state:  StateClosed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current modal state.
func (c *Controller) State() State { return c.state }

// Open activates the modal for a record's photo list. Activation with an
// empty list is a no-op; the viewer never opens with nothing to show.
func (c *Controller) Open(photos []string) bool {
	if len(photos) == 0 {
		c.logger.Debug("gallery.open.empty")
		return false
	}
	if c.state == StateOpen {
		return false
	}

	c.photos = photos
	c.revealed = min(initialRevealCount, len(photos))
	c.lightboxOpen = false
	c.lightboxIndex = 0
	c.state = StateOpen
	c.lockScroll()
	return true
}

// Close exits the modal via the close button or backdrop click.
func (c *Controller) Close() {
	c.exit()
}

// HandleEscape exits the modal on the Escape key. When the lightbox
// sub-state is open, Escape closes the lightbox first and leaves the modal
// open.
func (c *Controller) HandleEscape() {
	if c.state != StateOpen {
		return
	}
	if c.lightboxOpen {
		c.CloseLightbox()
		return
	}
	c.exit()
}

// Teardown force-reverts every held side effect regardless of state. It runs
// on component unmount, where an overlay left open would otherwise leak a
// stuck scroll lock.
func (c *Controller) Teardown() {
	c.exit()
}

func (c *Controller) exit() {
	c.state = StateClosed
	c.photos = nil
	c.revealed = 0
	c.lightboxOpen = false
	c.lightboxIndex = 0
	c.unlockScroll()
}

func (c *Controller) lockScroll() {
	if c.scrollLocked {
		return
	}
	c.scrollLocked = true
	c.locker.Lock()
}

func (c *Controller) unlockScroll() {
	if !c.scrollLocked {
		return
	}
	c.scrollLocked = false
	c.locker.Unlock()
}

// Revealed returns the currently visible slice of the photo list.
func (c *Controller) Revealed() []string {
	if c.state != StateOpen {
		return nil
	}
	return c.photos[:c.revealed]
}

// HasMore reports whether more photos remain beyond the revealed set.
func (c *Controller) HasMore() bool {
	return c.state == StateOpen && c.revealed < len(c.photos)
}

// RevealMore exposes the next batch of photos. It returns the number of
// newly revealed photos, zero when everything is already visible.
func (c *Controller) RevealMore() int {
	if !c.HasMore() {
		return 0
	}
	next := min(c.revealed+revealStep, len(c.photos))
	added := next - c.revealed
	c.revealed = next
	return added
}

// OpenLightbox enters the full-screen single-image sub-state on a revealed
// photo index. Indexes outside the revealed range are ignored.
func (c *Controller) OpenLightbox(index int) bool {
	if c.state != StateOpen || index < 0 || index >= c.revealed {
		return false
	}
	c.lightboxOpen = true
	c.lightboxIndex = index
	return true
}

// CloseLightbox leaves the lightbox sub-state; the modal stays open.
func (c *Controller) CloseLightbox() {
	c.lightboxOpen = false
}

// LightboxOpen reports whether the lightbox sub-state is active.
func (c *Controller) LightboxOpen() bool { return c.lightboxOpen }

// LightboxIndex returns the photo index shown in the lightbox.
func (c *Controller) LightboxIndex() int { return c.lightboxIndex }

// NextPhoto advances the lightbox, wrapping within the revealed set.
func (c *Controller) NextPhoto() {
	if !c.lightboxOpen || c.revealed == 0 {
		return
	}
	c.lightboxIndex = (c.lightboxIndex + 1) % c.revealed
}

// PrevPhoto steps the lightbox back, wrapping within the revealed set.
func (c *Controller) PrevPhoto() {
	if !c.lightboxOpen || c.revealed == 0 {
		return
	}
	c.lightboxIndex = (c.lightboxIndex + c.revealed - 1) % c.revealed
}

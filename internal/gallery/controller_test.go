package gallery

import "testing"

type countingLocker struct {
	locks   int
	unlocks int
}

func (l *countingLocker) Lock()   { l.locks++ }
func (l *countingLocker) Unlock() { l.unlocks++ }

func photos(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "/photo.jpg"
	}
	return out
}

func TestOpenWithEmptyListStaysClosed(t *testing.T) {
	locker := &countingLocker{}
	c := NewController(WithScrollLocker(locker))

	if c.Open(nil) {
		t.Fatal("open with empty list must be a no-op")
	}
	if c.State() != StateClosed {
		t.Fatalf("expected closed, got %s", c.State())
	}
	if locker.locks != 0 {
		t.Fatalf("scroll must not be locked, got %d locks", locker.locks)
	}
}

func TestOpenLocksScrollOnce(t *testing.T) {
	locker := &countingLocker{}
	c := NewController(WithScrollLocker(locker))

	if !c.Open(photos(3)) {
		t.Fatal("open failed")
	}
	if c.State() != StateOpen {
		t.Fatalf("expected open, got %s", c.State())
	}
	if locker.locks != 1 {
		t.Fatalf("expected one lock, got %d", locker.locks)
	}
	if c.Open(photos(3)) {
		t.Fatal("re-activation while open must be a no-op")
	}
	if locker.locks != 1 {
		t.Fatalf("re-activation must not lock again, got %d", locker.locks)
	}
}

func TestScrollLockRevertedExactlyOncePerExitPath(t *testing.T) {
	exits := []struct {
		name string
		exit func(c *Controller)
	}{
		{"close", func(c *Controller) { c.Close() }},
		{"escape", func(c *Controller) { c.HandleEscape() }},
		{"teardown", func(c *Controller) { c.Teardown() }},
	}

	for _, tc := range exits {
		locker := &countingLocker{}
		c := NewController(WithScrollLocker(locker))
		c.Open(photos(3))

		tc.exit(c)
		if c.State() != StateClosed {
			t.Fatalf("%s: expected closed, got %s", tc.name, c.State())
		}
		if locker.unlocks != 1 {
			t.Fatalf("%s: expected one unlock, got %d", tc.name, locker.unlocks)
		}

		// Exiting again must never double-revert.
		c.Close()
		c.Teardown()
		c.HandleEscape()
		if locker.unlocks != 1 {
			t.Fatalf("%s: repeated exits double-reverted, got %d unlocks", tc.name, locker.unlocks)
		}
	}
}

func TestTeardownWhileClosedIsHarmless(t *testing.T) {
	locker := &countingLocker{}
	c := NewController(WithScrollLocker(locker))

	c.Teardown()
	if locker.unlocks != 0 {
		t.Fatalf("teardown while closed must not unlock, got %d", locker.unlocks)
	}
}

func TestIncrementalReveal(t *testing.T) {
	c := NewController()
	c.Open(photos(40))

	if got := len(c.Revealed()); got != initialRevealCount {
		t.Fatalf("expected %d initially revealed, got %d", initialRevealCount, got)
	}
	if !c.HasMore() {
		t.Fatal("expected more photos beyond the initial batch")
	}

	if added := c.RevealMore(); added != revealStep {
		t.Fatalf("expected %d added, got %d", revealStep, added)
	}
	if added := c.RevealMore(); added != revealStep {
		t.Fatalf("expected %d added, got %d", revealStep, added)
	}
	if added := c.RevealMore(); added != 1 {
		t.Fatalf("expected final photo, got %d", added)
	}
	if c.HasMore() {
		t.Fatal("everything revealed, HasMore must be false")
	}
	if added := c.RevealMore(); added != 0 {
		t.Fatalf("reveal past the end must add nothing, got %d", added)
	}
}

func TestRevealShortListShowsEverything(t *testing.T) {
	c := NewController()
	c.Open(photos(4))

	if got := len(c.Revealed()); got != 4 {
		t.Fatalf("short list should be fully revealed, got %d", got)
	}
	if c.HasMore() {
		t.Fatal("nothing left to reveal")
	}
}

func TestLightboxSubState(t *testing.T) {
	c := NewController()
	c.Open(photos(20))

	if c.OpenLightbox(initialRevealCount) {
		t.Fatal("unrevealed index must not open the lightbox")
	}
	if !c.OpenLightbox(2) {
		t.Fatal("lightbox open failed")
	}
	if !c.LightboxOpen() || c.LightboxIndex() != 2 {
		t.Fatalf("unexpected lightbox state: open=%v index=%d", c.LightboxOpen(), c.LightboxIndex())
	}

	c.NextPhoto()
	if c.LightboxIndex() != 3 {
		t.Fatalf("expected index 3, got %d", c.LightboxIndex())
	}
	c.PrevPhoto()
	c.PrevPhoto()
	if c.LightboxIndex() != 1 {
		t.Fatalf("expected index 1, got %d", c.LightboxIndex())
	}

	// Escape closes the lightbox first, then the modal.
	c.HandleEscape()
	if c.LightboxOpen() {
		t.Fatal("escape should close the lightbox")
	}
	if c.State() != StateOpen {
		t.Fatal("modal should stay open after lightbox escape")
	}
	c.HandleEscape()
	if c.State() != StateClosed {
		t.Fatal("second escape should close the modal")
	}
}

func TestLightboxWrapsWithinRevealedSet(t *testing.T) {
	c := NewController()
	c.Open(photos(20))
	c.OpenLightbox(initialRevealCount - 1)

	c.NextPhoto()
	if c.LightboxIndex() != 0 {
		t.Fatalf("expected wrap to 0, got %d", c.LightboxIndex())
	}
	c.PrevPhoto()
	if c.LightboxIndex() != initialRevealCount-1 {
		t.Fatalf("expected wrap to end of revealed set, got %d", c.LightboxIndex())
	}
}

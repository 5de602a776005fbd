package progression

import (
	"math"
	"testing"

	"github.com/abhisek/visiontour/internal/deck"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(deck.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// unlockAndNext opens the gate and advances, failing the test if it cannot.
func unlockAndNext(t *testing.T, c *Controller) {
	t.Helper()
	c.ReportInteraction()
	if !c.Next() {
		t.Fatalf("Next() from %d failed after interaction", c.CurrentIndex())
	}
}

func TestNew_RejectsEmptyDeck(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil deck")
	}
}

func TestInitialState(t *testing.T) {
	c := newController(t)
	if got := c.State(); got != (State{CurrentIndex: 0, CanAdvance: true}) {
		t.Fatalf("initial state = %+v, want index 0 unlocked", got)
	}
}

func TestBookendsUnlockedOnArrival(t *testing.T) {
	c := newController(t)
	for c.CurrentIndex() < c.Len()-1 {
		unlockAndNext(t, c)
		kind := c.Current().Kind
		if kind.IsBookend() {
			if !c.CanAdvance() {
				t.Errorf("slide %d (%s): expected unlocked on arrival", c.CurrentIndex(), kind)
			}
		} else if c.CanAdvance() {
			t.Errorf("slide %d (%s): expected locked on arrival", c.CurrentIndex(), kind)
		}
	}
}

func TestInteractionIsIdempotent(t *testing.T) {
	c := newController(t)
	unlockAndNext(t, c)

	if !c.ReportInteraction() {
		t.Fatal("first interaction should unlock")
	}
	for i := 0; i < 5; i++ {
		if c.ReportInteraction() {
			t.Fatal("repeated interaction should report no change")
		}
		if !c.CanAdvance() {
			t.Fatal("gate closed after repeated interaction")
		}
	}
}

func TestNext_NoOpWhenLocked(t *testing.T) {
	c := newController(t)
	unlockAndNext(t, c)

	for i := 0; i < 3; i++ {
		if c.Next() {
			t.Fatal("Next() moved while locked")
		}
	}
	if c.CurrentIndex() != 1 {
		t.Fatalf("index = %d, want 1", c.CurrentIndex())
	}
	if c.CanAdvance() {
		t.Fatal("failed Next() must not unlock")
	}
}

func TestNext_NoOpOnLastSlide(t *testing.T) {
	c := newController(t)
	for !c.IsLastSlide() {
		unlockAndNext(t, c)
	}
	if !c.CanAdvance() {
		t.Fatal("conclusion should be unlocked")
	}
	if c.Next() {
		t.Fatal("Next() moved past the last slide")
	}
	if c.CurrentIndex() != c.Len()-1 {
		t.Fatalf("index = %d, want %d", c.CurrentIndex(), c.Len()-1)
	}
}

func TestPrevious(t *testing.T) {
	c := newController(t)
	if c.Previous() {
		t.Fatal("Previous() moved at index 0")
	}

	unlockAndNext(t, c)
	unlockAndNext(t, c)
	if c.CurrentIndex() != 2 {
		t.Fatalf("index = %d, want 2", c.CurrentIndex())
	}

	if !c.Previous() {
		t.Fatal("Previous() failed at index 2")
	}
	if c.CurrentIndex() != 1 {
		t.Fatalf("index = %d, want 1", c.CurrentIndex())
	}
	// Timeline is re-locked by the slide-change reset.
	if c.CanAdvance() {
		t.Fatal("expected timeline to be locked after navigating back")
	}

	if !c.Previous() {
		t.Fatal("Previous() failed at index 1")
	}
	if !c.CanAdvance() {
		t.Fatal("expected intro to be unlocked after navigating back")
	}
}

func TestRestart(t *testing.T) {
	c := newController(t)
	if c.Restart() {
		t.Fatal("Restart() applied on the first slide")
	}

	unlockAndNext(t, c)
	if c.Restart() {
		t.Fatal("Restart() applied away from the last slide")
	}
	if c.CurrentIndex() != 1 {
		t.Fatalf("index = %d, want 1", c.CurrentIndex())
	}

	for !c.IsLastSlide() {
		unlockAndNext(t, c)
	}
	if !c.Restart() {
		t.Fatal("Restart() failed on the last slide")
	}
	if got := c.State(); got != (State{CurrentIndex: 0, CanAdvance: true}) {
		t.Fatalf("state after restart = %+v", got)
	}
}

func TestDerivedValues(t *testing.T) {
	c := newController(t)
	if got := c.ProgressPercent(); math.Abs(got-100.0/12) > 1e-9 {
		t.Errorf("ProgressPercent() = %v, want %v", got, 100.0/12)
	}
	if c.IsLastSlide() {
		t.Error("IsLastSlide() true on first slide")
	}
	for !c.IsLastSlide() {
		unlockAndNext(t, c)
	}
	if got := c.ProgressPercent(); got != 100 {
		t.Errorf("ProgressPercent() = %v at end, want 100", got)
	}
}

func TestTimelineScenario(t *testing.T) {
	c := newController(t)
	if c.Len() != 12 {
		t.Fatalf("deck length = %d, want 12", c.Len())
	}

	if !c.Next() {
		t.Fatal("expected to leave the intro without interaction")
	}
	if c.CurrentIndex() != 1 || c.Current().Kind != deck.KindTimeline {
		t.Fatalf("landed on %d (%s), want 1 (timeline)", c.CurrentIndex(), c.Current().Kind)
	}
	if c.CanAdvance() {
		t.Fatal("timeline should be locked")
	}

	if c.Next() || c.CurrentIndex() != 1 {
		t.Fatal("Next() must be a no-op before a milestone is selected")
	}

	c.ReportInteraction()
	if !c.Next() || c.CurrentIndex() != 2 {
		t.Fatalf("expected index 2 after interaction, got %d", c.CurrentIndex())
	}
}

func TestSingleBookendDeck(t *testing.T) {
	d, err := deck.New([]deck.Slide{{ID: 1, Title: "only", Kind: deck.KindConclusion}})
	if err != nil {
		t.Fatalf("deck.New: %v", err)
	}
	c, err := New(d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !c.IsLastSlide() {
		t.Fatal("single-slide deck: expected last slide")
	}
	if c.Next() || c.Previous() {
		t.Fatal("navigation must be a no-op on a single-slide deck")
	}
	if !c.Restart() || c.CurrentIndex() != 0 {
		t.Fatal("restart on single-slide deck should stay at 0")
	}
}

// Package progression implements the slide-progression gate: the learner may
// only move forward once the current slide's widget has reported an
// interaction, except on bookend slides which start unlocked.
package progression

import (
	"fmt"

	"github.com/abhisek/visiontour/internal/deck"
)

// State is a point-in-time view of the controller.
type State struct {
	CurrentIndex int
	CanAdvance   bool
}

// Controller owns the current slide index and the advance gate.
// It is not safe for concurrent use; the UI event loop is its only caller.
type Controller struct {
	deck       *deck.Deck
	index      int
	canAdvance bool
}

// New creates a controller positioned on the first slide.
func New(d *deck.Deck) (*Controller, error) {
	if d == nil || d.Len() == 0 {
		return nil, fmt.Errorf("progression requires a non-empty deck")
	}
	c := &Controller{deck: d}
	c.setIndex(0)
	return c, nil
}

// Next moves to the following slide when the gate is open and the current
// slide is not the last one. It reports whether the index changed.
func (c *Controller) Next() bool {
	if c.IsLastSlide() || !c.canAdvance {
		return false
	}
	c.setIndex(c.index + 1)
	return true
}

// Previous moves back one slide. No-op on the first slide.
func (c *Controller) Previous() bool {
	if c.index == 0 {
		return false
	}
	c.setIndex(c.index - 1)
	return true
}

// Restart returns to the first slide. It only applies on the last slide.
func (c *Controller) Restart() bool {
	if !c.IsLastSlide() {
		return false
	}
	c.setIndex(0)
	c.canAdvance = true
	return true
}

// ReportInteraction opens the gate for the current slide. It reports whether
// this call was the one that unlocked it; repeated calls are harmless.
func (c *Controller) ReportInteraction() bool {
	if c.canAdvance {
		return false
	}
	c.canAdvance = true
	return true
}

// setIndex moves to i and applies the per-slide reset rule.
func (c *Controller) setIndex(i int) {
	c.index = i
	c.canAdvance = c.deck.At(i).Kind.IsBookend()
}

// Current returns the slide at the current index.
func (c *Controller) Current() deck.Slide {
	return c.deck.At(c.index)
}

// CurrentIndex returns the zero-based index of the current slide.
func (c *Controller) CurrentIndex() int {
	return c.index
}

// CanAdvance reports whether Next would move forward (ignoring the last-slide rule).
func (c *Controller) CanAdvance() bool {
	return c.canAdvance
}

// Len returns the deck length.
func (c *Controller) Len() int {
	return c.deck.Len()
}

// IsLastSlide reports whether the current slide is the final one.
func (c *Controller) IsLastSlide() bool {
	return c.index == c.deck.Len()-1
}

// ProgressPercent returns the 1-based position as a percentage of the deck.
func (c *Controller) ProgressPercent() float64 {
	return float64(c.index+1) / float64(c.deck.Len()) * 100
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	return State{CurrentIndex: c.index, CanAdvance: c.canAdvance}
}

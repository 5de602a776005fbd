package deck

import (
	"errors"
	"fmt"
)

// Deck is a fixed, ordered sequence of slides.
type Deck struct {
	slides []Slide
}

// New builds a deck from the given slides and validates it.
func New(slides []Slide) (*Deck, error) {
	d := &Deck{slides: append([]Slide(nil), slides...)}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Default returns the built-in presentation deck.
func Default() *Deck {
	d, err := New(defaultSlides)
	if err != nil {
		panic(fmt.Sprintf("built-in deck is invalid: %v", err))
	}
	return d
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// At returns a copy of the slide at index i. It panics if i is out of range.
func (d *Deck) At(i int) Slide {
	return d.slides[i]
}

// Slides returns a copy of all slides in order.
func (d *Deck) Slides() []Slide {
	return append([]Slide(nil), d.slides...)
}

// Validate checks the structural invariants of the deck: at least one slide,
// unique ascending IDs, non-empty titles and known kinds.
func (d *Deck) Validate() error {
	if len(d.slides) == 0 {
		return errors.New("deck has no slides")
	}

	var errs []error
	prevID := 0
	for i, s := range d.slides {
		if i > 0 && s.ID <= prevID {
			errs = append(errs, fmt.Errorf("slide %d: id %d is not greater than previous id %d", i, s.ID, prevID))
		}
		prevID = s.ID
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("slide %d: empty title", i))
		}
		if !s.Kind.Known() {
			errs = append(errs, fmt.Errorf("slide %d: unknown kind %q", i, s.Kind))
		}
	}
	return errors.Join(errs...)
}

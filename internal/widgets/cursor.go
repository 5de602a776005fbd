package widgets

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// cursor tracks the highlighted entry of a short vertical list and turns key
// presses into an index to activate.
type cursor struct {
	pos int
	n   int
}

// handle moves the cursor on up/down and returns the index to activate for
// enter, space or a 1-based digit. ok is false when nothing was activated.
func (c *cursor) handle(msg tea.KeyMsg) (idx int, ok bool) {
	key := msg.String()
	switch key {
	case "up", "k":
		if c.pos > 0 {
			c.pos--
		}
		return 0, false
	case "down", "j":
		if c.pos < c.n-1 {
			c.pos++
		}
		return 0, false
	case "enter", "space", " ":
		return c.pos, true
	}

	if d, err := strconv.Atoi(key); err == nil && d >= 1 && d <= c.n {
		c.pos = d - 1
		return c.pos, true
	}
	return 0, false
}

package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/visiontour/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	left    int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type leavingScreen struct {
	stubScreen
}

type leftMsg struct{ title string }

func (s *leavingScreen) Leave() tea.Cmd {
	s.left++
	title := s.title
	return func() tea.Msg { return leftMsg{title: title} }
}

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	s2 := &stubScreen{title: "slides"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "slides" {
		t.Errorf("expected active 'slides', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "slides"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestPopRunsLeave(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	top := &leavingScreen{stubScreen{title: "slides"}}
	r.Push(top)

	cmd := r.Update(PopScreenMsg{})

	if top.left != 1 {
		t.Fatalf("expected Leave to run once, ran %d times", top.left)
	}
	if cmd == nil {
		t.Fatal("expected leave command")
	}
	msg, ok := cmd().(leftMsg)
	if !ok || msg.title != "slides" {
		t.Errorf("unexpected leave message %#v", msg)
	}
}

func TestPopAtBottomDoesNotLeave(t *testing.T) {
	bottom := &leavingScreen{stubScreen{title: "home"}}
	r := New(bottom)
	r.Pop()

	if bottom.left != 0 {
		t.Errorf("bottom screen should not leave, ran %d times", bottom.left)
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	old := &leavingScreen{stubScreen{title: "index"}}
	r.Push(old)

	s3 := &stubScreen{title: "slides"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "slides" {
		t.Errorf("expected active 'slides', got %q", r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
	if old.left != 1 {
		t.Errorf("expected replaced screen to leave once, got %d", old.left)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "slides"})

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if got := r.View(80, 24); got != "slides" {
		t.Errorf("expected active view 'slides', got %q", got)
	}
}

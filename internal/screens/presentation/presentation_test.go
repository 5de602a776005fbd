package presentation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/chat"
	"github.com/abhisek/visiontour/internal/deck"
	"github.com/abhisek/visiontour/internal/llm"
	"github.com/abhisek/visiontour/internal/screen"
	"github.com/abhisek/visiontour/internal/store"
)

type fakeRecorder struct {
	events []store.TourEventData
	err    error
}

func (f *fakeRecorder) AppendTourEvent(_ context.Context, data store.TourEventData) error {
	f.events = append(f.events, data)
	return f.err
}

func (f *fakeRecorder) actions() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Action
	}
	return out
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func send(t *testing.T, s *Screen, msg tea.Msg) tea.Cmd {
	t.Helper()
	scr, cmd := s.Update(msg)
	if scr != screen.Screen(s) {
		t.Fatalf("presentation replaced itself with %T", scr)
	}
	return cmd
}

func deliver(t *testing.T, s *Screen, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		send(t, s, msg)
	}
}

func typeText(t *testing.T, s *Screen, text string) {
	t.Helper()
	for _, r := range text {
		send(t, s, keyPress(r))
	}
}

func newTestScreen(t *testing.T, mock *llm.MockProvider) (*Screen, *fakeRecorder) {
	t.Helper()
	ai, err := aiclient.New(llm.Wrap("mock", mock, llm.RetryConfig{MaxAttempts: 1}, nil, nil), aiclient.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("aiclient.New: %v", err)
	}
	rec := &fakeRecorder{}
	s, err := New(Options{AI: ai, Events: rec, ImagesDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Init()
	return s, rec
}

// engage performs the proof-of-engagement action for the current slide.
func engage(t *testing.T, s *Screen) {
	t.Helper()
	switch s.ctrl.Current().Kind {
	case deck.KindTimeline, deck.KindAlexNet, deck.KindResNet, deck.KindAttention, deck.KindEthics:
		send(t, s, keyPress('1'))
	case deck.KindCNN:
		send(t, s, keyPress('h'))
	case deck.KindViT:
		send(t, s, keyPress('t'))
	case deck.KindDiffusion:
		send(t, s, keyPress('+'))
	case deck.KindGenImage:
		send(t, s, keyPress('i'))
		typeText(t, s, "gato")
		deliver(t, s, send(t, s, specialKey(tea.KeyEnter)))
	case deck.KindVideoSearch:
		deliver(t, s, send(t, s, keyPress('1')))
	}
}

func TestPresentation_WalkWholeDeck(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddImageResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	mock.AddSearchResponse(llm.MockResponse{Text: "Sora"})
	s, rec := newTestScreen(t, mock)

	total := s.ctrl.Len()
	if total != 12 {
		t.Fatalf("deck length = %d, want 12", total)
	}

	for i := 0; i < total-1; i++ {
		kind := s.ctrl.Current().Kind
		if kind.IsBookend() != s.ctrl.CanAdvance() {
			t.Fatalf("slide %d (%s): CanAdvance = %v on arrival", i, kind, s.ctrl.CanAdvance())
		}

		if !kind.IsBookend() {
			send(t, s, specialKey(tea.KeyRight))
			if s.ctrl.CurrentIndex() != i {
				t.Fatalf("slide %d (%s): advanced without interaction", i, kind)
			}
			if !strings.Contains(ansi.Strip(s.View(120, 40)), "Interactúa para continuar") {
				t.Errorf("slide %d: expected locked next button", i)
			}
			engage(t, s)
			if !s.ctrl.CanAdvance() {
				t.Fatalf("slide %d (%s): engagement did not unlock", i, kind)
			}
		}

		send(t, s, specialKey(tea.KeyRight))
		if s.ctrl.CurrentIndex() != i+1 {
			t.Fatalf("slide %d: expected to advance, index = %d", i, s.ctrl.CurrentIndex())
		}
	}

	if !s.ctrl.IsLastSlide() || !s.ctrl.CanAdvance() {
		t.Fatal("conclusion should be reached and unlocked")
	}
	if !strings.Contains(s.View(120, 40), "Reiniciar") {
		t.Error("expected restart button on the last slide")
	}

	send(t, s, keyPress('n'))
	if !s.ctrl.IsLastSlide() {
		t.Error("next on the last slide must be a no-op")
	}

	send(t, s, keyPress('r'))
	if s.ctrl.CurrentIndex() != 0 || !s.ctrl.CanAdvance() {
		t.Errorf("restart: state = %+v", s.ctrl.State())
	}

	actions := rec.actions()
	if actions[0] != store.TourStart {
		t.Errorf("first action = %q, want start", actions[0])
	}
	counts := map[string]int{}
	for _, a := range actions {
		counts[a]++
	}
	if counts[store.TourAdvance] != total-1 {
		t.Errorf("advance events = %d, want %d", counts[store.TourAdvance], total-1)
	}
	if counts[store.TourInteract] != total-2 {
		t.Errorf("interact events = %d, want %d", counts[store.TourInteract], total-2)
	}
	if counts[store.TourFinish] != 1 || counts[store.TourRestart] != 1 {
		t.Errorf("finish/restart = %d/%d, want 1/1", counts[store.TourFinish], counts[store.TourRestart])
	}
	for _, e := range rec.events {
		if e.TourID != s.TourID() {
			t.Fatalf("event tour id = %q, want %q", e.TourID, s.TourID())
		}
	}
}

func TestPresentation_BackResetsGate(t *testing.T) {
	s, rec := newTestScreen(t, llm.NewMockProvider())

	send(t, s, keyPress('n')) // intro -> timeline
	send(t, s, keyPress('1'))
	send(t, s, keyPress('n')) // timeline -> cnn
	send(t, s, keyPress('p')) // back to timeline

	if s.ctrl.CurrentIndex() != 1 {
		t.Fatalf("index = %d, want 1", s.ctrl.CurrentIndex())
	}
	if s.ctrl.CanAdvance() {
		t.Error("returning to an interactive slide must lock it again")
	}

	send(t, s, keyPress('p'))
	send(t, s, keyPress('p'))
	if s.ctrl.CurrentIndex() != 0 {
		t.Errorf("previous at the first slide must be a no-op, index = %d", s.ctrl.CurrentIndex())
	}
	if got := rec.actions()[len(rec.actions())-1]; got != store.TourBack {
		t.Errorf("last action = %q, want back", got)
	}
}

func TestPresentation_RepeatedInteractionRecordedOnce(t *testing.T) {
	s, rec := newTestScreen(t, llm.NewMockProvider())
	send(t, s, keyPress('n'))

	for range 3 {
		send(t, s, keyPress('2'))
	}

	counts := 0
	for _, a := range rec.actions() {
		if a == store.TourInteract {
			counts++
		}
	}
	if counts != 1 {
		t.Errorf("interact events = %d, want 1", counts)
	}
}

func TestPresentation_ChatSuccess(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Una CNN mira la imagen por partes."})
	s, _ := newTestScreen(t, mock)

	send(t, s, keyPress('?'))
	if !s.chat.open || !s.CapturingInput() {
		t.Fatal("expected chat panel open and capturing keys")
	}

	typeText(t, s, "¿Qué es una CNN?")
	if s.ctrl.CurrentIndex() != 0 {
		t.Fatal("typing in chat must not navigate")
	}

	cmd := send(t, s, specialKey(tea.KeyEnter))
	if !s.chat.session.Sending() {
		t.Fatal("expected sending state")
	}
	if !strings.Contains(s.View(140, 40), "Escribiendo") {
		t.Error("expected loading indicator while sending")
	}
	if again := send(t, s, specialKey(tea.KeyEnter)); again != nil {
		t.Error("send must be suppressed while a reply is pending")
	}

	deliver(t, s, cmd)

	if s.chat.session.Sending() {
		t.Error("loading indicator should clear after the reply")
	}
	msgs := s.chat.session.Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[1].Role != chat.RoleUser || msgs[1].Text != "¿Qué es una CNN?" {
		t.Errorf("user message = %+v", msgs[1])
	}
	if msgs[2].Text != "Una CNN mira la imagen por partes." || msgs[2].IsError {
		t.Errorf("reply = %+v", msgs[2])
	}

	// Greeting only goes out as history.
	req := mock.Calls[0]
	if len(req.Messages) != 2 {
		t.Errorf("request messages = %d, want 2", len(req.Messages))
	}
}

func TestPresentation_ChatFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	s, _ := newTestScreen(t, mock)

	send(t, s, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if !s.chat.open {
		t.Fatal("ctrl+t should open the chat")
	}
	typeText(t, s, "hola")
	deliver(t, s, send(t, s, specialKey(tea.KeyEnter)))

	if s.chat.session.Sending() {
		t.Error("loading indicator should clear after a failure")
	}
	msgs := s.chat.session.Messages()
	last := msgs[len(msgs)-1]
	if !last.IsError || last.Text != "Tuve un problema de conexión. Inténtalo de nuevo." {
		t.Errorf("last message = %+v", last)
	}
	if !strings.Contains(s.View(140, 40), "⚠") {
		t.Error("expected error marker in chat view")
	}

	send(t, s, specialKey(tea.KeyEscape))
	if s.chat.open {
		t.Error("esc should close the chat")
	}
}

func TestPresentation_ChatKeepsTextAsTyped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Hola."})
	s, _ := newTestScreen(t, mock)

	send(t, s, keyPress('?'))
	typeText(t, s, "  ¿ViT?  ")
	deliver(t, s, send(t, s, specialKey(tea.KeyEnter)))

	msgs := s.chat.session.Messages()
	if msgs[1].Text != "  ¿ViT?  " {
		t.Errorf("user message = %q, want the raw input", msgs[1].Text)
	}
	req := mock.Calls[0]
	if got := req.Messages[len(req.Messages)-1].Content; got != "  ¿ViT?  " {
		t.Errorf("sent message = %q, want the raw input", got)
	}
}

func TestPresentation_ChatReplyFromPreviousTourDropped(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "respuesta del tour anterior"},
		llm.MockResponse{Text: "respuesta nueva"},
	)
	old, _ := newTestScreen(t, mock)
	send(t, old, keyPress('?'))
	typeText(t, old, "hola")
	stale := runCmd(send(t, old, specialKey(tea.KeyEnter)))
	old.Leave()

	fresh, _ := newTestScreen(t, mock)
	for _, msg := range stale {
		send(t, fresh, msg)
	}
	if n := fresh.chat.session.Len(); n != 1 {
		t.Fatalf("new tour chat has %d messages, want only the greeting", n)
	}

	send(t, fresh, keyPress('?'))
	typeText(t, fresh, "otra")
	pending := send(t, fresh, specialKey(tea.KeyEnter))
	for _, msg := range stale {
		send(t, fresh, msg)
	}
	if !fresh.chat.session.Sending() {
		t.Fatal("a reply for another tour must not end the pending send")
	}

	deliver(t, fresh, pending)
	msgs := fresh.chat.session.Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[2].Text != "respuesta nueva" {
		t.Errorf("reply = %q", msgs[2].Text)
	}
}

func TestPresentation_BlankChatInputNotSent(t *testing.T) {
	mock := llm.NewMockProvider()
	s, _ := newTestScreen(t, mock)

	send(t, s, keyPress('?'))
	typeText(t, s, "   ")
	if cmd := send(t, s, specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("blank input should not be sent")
	}
	if mock.CallCount() != 0 {
		t.Error("backend should not be called")
	}
}

func TestPresentation_StaleImageResultIgnored(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddImageResponse(llm.MockResponse{Images: []llm.InlineData{{MIMEType: "image/png", Data: []byte("png")}}})
	s, _ := newTestScreen(t, mock)

	for s.ctrl.Current().Kind != deck.KindGenImage {
		engage(t, s)
		send(t, s, keyPress('n'))
	}

	send(t, s, keyPress('i'))
	typeText(t, s, "gato")
	cmd := send(t, s, specialKey(tea.KeyEnter))
	send(t, s, keyPress('n'))
	if s.ctrl.Current().Kind == deck.KindGenImage {
		t.Fatal("expected to leave the image slide")
	}

	// The reply lands on a different slide and must not disturb it.
	deliver(t, s, cmd)
	if s.ctrl.CanAdvance() {
		t.Error("stale result must not unlock the new slide")
	}
}

func TestPresentation_LeaveRecordsQuit(t *testing.T) {
	s, rec := newTestScreen(t, llm.NewMockProvider())
	s.Leave()

	actions := rec.actions()
	if actions[len(actions)-1] != store.TourQuit {
		t.Errorf("last action = %q, want quit", actions[len(actions)-1])
	}
}

func TestPresentation_RecorderFailureDoesNotBlock(t *testing.T) {
	s, rec := newTestScreen(t, llm.NewMockProvider())
	rec.err = errors.New("disk full")

	send(t, s, keyPress('n'))
	if s.ctrl.CurrentIndex() != 1 {
		t.Error("navigation must succeed even when recording fails")
	}
}

func TestPresentation_StatusAndHints(t *testing.T) {
	s, _ := newTestScreen(t, llm.NewMockProvider())
	if got := s.Status(); !strings.HasPrefix(got, "1/12") {
		t.Errorf("status = %q", got)
	}
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}

func TestRenderSlide(t *testing.T) {
	d := deck.Default()

	cnn := d.At(2)
	out := renderSlide(cnn, nil, 100)
	if !strings.Contains(out, cnn.Title) || !strings.Contains(out, cnn.Researcher.Name) {
		t.Errorf("expected title and researcher badge, got:\n%s", out)
	}

	unknown := deck.Slide{ID: 99, Title: "Holograma", Content: "texto", Kind: deck.Kind("hologram")}
	out = renderSlide(unknown, nil, 100)
	if !strings.Contains(out, "Holograma") || !strings.Contains(out, "texto") {
		t.Error("unknown kind should still render chrome")
	}

	last := d.At(d.Len() - 1)
	if !strings.Contains(renderSlide(last, nil, 100), "Gracias por completar") {
		t.Error("expected closing banner on conclusion")
	}
}

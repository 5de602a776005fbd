package widgets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/aiclient"
	"github.com/abhisek/visiontour/internal/logger"
	"github.com/abhisek/visiontour/internal/ui/components"
	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

const previewCols = 32

// imageResultMsg carries a finished generation back to the widget mount that
// started it.
type imageResultMsg struct {
	mount uint64
	image *aiclient.Image
	err   error
}

// imageSavedMsg reports the outcome of writing the image to disk.
type imageSavedMsg struct {
	mount uint64
	path  string
	err   error
}

// ImageLab lets the learner turn a prompt into an image. Submitting a
// non-empty prompt is the engagement action.
type ImageLab struct {
	mount     uint64
	ai        *aiclient.Client
	lang      aiclient.Language
	imagesDir string
	log       *logger.Logger

	input   components.TextInput
	spinner spinner.Model
	loading bool

	image   *aiclient.Image
	preview string
	errText string
	saved   string

	onInteract func()
}

func newImageLab(deps Deps, onInteract func()) *ImageLab {
	lang, _ := aiclient.LookupLanguage("es")
	if deps.AI != nil {
		lang = deps.AI.Language()
	}

	input := components.NewTextInput("Escribe aquí... ej: Un astronauta montando un caballo en Marte, estilo cyberpunk", 400)
	input.Blur()

	return &ImageLab{
		mount:      nextMount(),
		ai:         deps.AI,
		lang:       lang,
		imagesDir:  deps.ImagesDir,
		log:        deps.logger("image-lab"),
		input:      input,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary))),
		onInteract: onInteract,
	}
}

// CapturingText reports whether the prompt box has focus.
func (w *ImageLab) CapturingText() bool {
	return w.input.Focused()
}

// Loading reports whether a generation is in flight.
func (w *ImageLab) Loading() bool {
	return w.loading
}

func (w *ImageLab) Init() tea.Cmd { return nil }

func (w *ImageLab) Update(msg tea.Msg) (Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case imageResultMsg:
		if msg.mount != w.mount {
			return w, nil
		}
		w.handleResult(msg)
		return w, nil

	case imageSavedMsg:
		if msg.mount != w.mount {
			return w, nil
		}
		if msg.err != nil {
			w.log.Warn("save image failed", "error", msg.err)
			w.errText = "No se pudo guardar la imagen: " + msg.err.Error()
			return w, nil
		}
		w.saved = msg.path
		return w, nil

	case spinner.TickMsg:
		if !w.loading {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *ImageLab) handleKey(msg tea.KeyMsg) (Widget, tea.Cmd) {
	if w.input.Focused() {
		switch msg.String() {
		case "esc":
			w.input.Blur()
			return w, nil
		case "enter":
			return w, w.submit()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		return w, cmd
	}

	switch msg.String() {
	case "i", "enter", "tab":
		if w.loading {
			return w, nil
		}
		return w, w.input.Focus()
	case "s":
		return w, w.save()
	}
	return w, nil
}

// submit starts a generation for the current prompt. A blank prompt or a
// generation already in flight sends nothing.
func (w *ImageLab) submit() tea.Cmd {
	if w.loading {
		return nil
	}
	if w.input.Blank() {
		w.errText = w.lang.ImageNoPrompt
		return nil
	}

	w.image = nil
	w.preview = ""
	w.errText = ""
	w.saved = ""
	w.loading = true
	w.input.Blur()
	w.onInteract()

	mount := w.mount
	if w.ai == nil {
		return func() tea.Msg {
			return imageResultMsg{mount: mount, err: errors.New("no AI backend configured")}
		}
	}

	ai, prompt := w.ai, w.input.Value()
	generate := func() tea.Msg {
		img, err := ai.GenerateImage(context.Background(), prompt)
		return imageResultMsg{mount: mount, image: img, err: err}
	}
	return tea.Batch(generate, w.spinner.Tick)
}

func (w *ImageLab) handleResult(msg imageResultMsg) {
	w.loading = false
	if msg.err != nil {
		w.log.Warn("image generation failed", "error", msg.err)
		var genErr *aiclient.GenerationError
		if errors.As(msg.err, &genErr) && genErr.Message != "" {
			w.errText = genErr.Message
		} else {
			w.errText = w.lang.ImageFailed
		}
		return
	}

	w.image = msg.image
	preview, err := renderPreview(msg.image.Data, previewCols)
	if err != nil {
		w.log.Debug("image preview unavailable", "error", err, "mime", msg.image.MIMEType)
	}
	w.preview = preview
}

func (w *ImageLab) save() tea.Cmd {
	if w.image == nil || w.loading {
		return nil
	}
	img, dir, mount := w.image, w.imagesDir, w.mount
	return func() tea.Msg {
		path, err := img.Save(dir)
		return imageSavedMsg{mount: mount, path: path, err: err}
	}
}

func (w *ImageLab) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("✦ LABORATORIO DE GENERACIÓN"))
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Prompt (Tu imaginación):"))
	b.WriteString("\n")

	w.input.SetWidth(max(min(width, 80)-6, 10))
	box := theme.Card
	if w.input.Focused() {
		box = theme.ActiveCard
	}
	b.WriteString(box.Render(w.input.View()))
	b.WriteString("\n")

	generate := components.NewButton("Generar", !w.loading && !w.input.Blank(), w.loading)
	b.WriteString(generate.View())
	if w.ai != nil && !w.ai.CanGenerateImages() {
		b.WriteString("  " + theme.Hint.Render("(el proveedor actual no genera imágenes)"))
	}
	b.WriteString("\n\n")

	switch {
	case w.loading:
		b.WriteString(w.spinner.View() + " " + theme.Hint.Render("Interpretando tu sueño..."))
	case w.errText != "":
		b.WriteString(theme.Bad.Render(w.errText))
	case w.image != nil:
		if w.preview != "" {
			b.WriteString(w.preview)
			b.WriteString("\n")
		}
		meta := fmt.Sprintf("%s · %d KB", w.image.MIMEType, (len(w.image.Data)+1023)/1024)
		b.WriteString(theme.Hint.Render(meta))
		if w.saved != "" {
			b.WriteString("\n" + theme.Good.Render("Guardada en "+w.saved))
		}
	default:
		b.WriteString(theme.Hint.Render("La imagen generada aparecerá aquí."))
	}
	return b.String()
}

func (w *ImageLab) KeyHints() []layout.KeyHint {
	if w.input.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Generar"},
			{Key: "Esc", Description: "Salir del prompt"},
		}
	}
	hints := []layout.KeyHint{{Key: "i", Description: "Escribir prompt"}}
	if w.image != nil {
		hints = append(hints, layout.KeyHint{Key: "s", Description: "Descargar imagen"})
	}
	return hints
}

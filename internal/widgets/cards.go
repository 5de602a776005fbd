package widgets

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/visiontour/internal/ui/layout"
	"github.com/abhisek/visiontour/internal/ui/theme"
)

type card struct {
	Icon  string
	Title string
	Sub   string
	Desc  string
}

// Cards is a row of expandable cards with at most one open at a time.
// Opening or closing any card counts as engagement. It backs both the
// AlexNet ingredients and the ethics topics.
type Cards struct {
	cards      []card
	cur        cursor
	open       int // -1 when all are collapsed
	closedHint string
	onInteract func()
}

func newCards(cards []card, closedHint string, onInteract func()) *Cards {
	return &Cards{
		cards:      cards,
		cur:        cursor{n: len(cards)},
		open:       -1,
		closedHint: closedHint,
		onInteract: onInteract,
	}
}

func newIngredients(onInteract func()) *Cards {
	return newCards([]card{
		{
			Icon: "⚡", Title: "ReLU", Sub: "Rectified Linear Unit",
			Desc: "Función de activación que convierte valores negativos a cero. Solucionó problemas matemáticos complejos y aceleró el entrenamiento de la red.",
		},
		{
			Icon: "🗑", Title: "Dropout", Sub: "Olvido Estratégico",
			Desc: "Técnica que 'apaga' neuronas aleatoriamente durante el entrenamiento. Obliga a la red a no memorizar datos, sino a aprender características generales.",
		},
		{
			Icon: "🎮", Title: "GPUs", Sub: "Potencia Gráfica",
			Desc: "Uso de tarjetas gráficas (originalmente para videojuegos) para realizar millones de cálculos en paralelo, haciendo viable el Deep Learning.",
		},
	}, "", onInteract)
}

func newEthics(onInteract func()) *Cards {
	return newCards([]card{
		{
			Icon: "©", Title: "Copyright", Sub: "El Dilema de la Propiedad",
			Desc: "Los modelos se entrenan con millones de imágenes de internet. ¿Es justo usar el arte de un humano para entrenar una máquina que luego compite contra él? Actualmente hay múltiples demandas legales en curso.",
		},
		{
			Icon: "⚖", Title: "Sesgos", Sub: "Prejuicios Heredados",
			Desc: "Si la IA aprende de internet, aprende también nuestros defectos. Puede generar imágenes que perpetúan estereotipos raciales o de género (ej. asociar ciertas profesiones solo a hombres) si no se filtra cuidadosamente.",
		},
		{
			Icon: "🎭", Title: "Deepfakes", Sub: "La Verdad en Peligro",
			Desc: "La capacidad de generar rostros y voces hiperrealistas permite suplantar identidades. Esto crea riesgos enormes de desinformación política, fraude y acoso. Necesitamos herramientas de 'marca de agua' digital.",
		},
	}, "Toca para saber más", onInteract)
}

func (c *Cards) Init() tea.Cmd { return nil }

func (c *Cards) Update(msg tea.Msg) (Widget, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	if idx, ok := c.cur.handle(kmsg); ok {
		if c.open == idx {
			c.open = -1
		} else {
			c.open = idx
		}
		c.onInteract()
	}
	return c, nil
}

func (c *Cards) View(width int) string {
	cardWidth := min(width, 76)
	parts := make([]string, 0, len(c.cards))
	for i, cd := range c.cards {
		style := theme.Card
		if i == c.cur.pos {
			style = theme.ActiveCard
		}

		head := fmt.Sprintf("%s  %s", cd.Icon, theme.Label.Render(cd.Title))
		if i == c.open {
			head += "  " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
			body := theme.Subtitle.Render(cd.Sub) + "\n" + theme.Body.Render(cd.Desc)
			parts = append(parts, style.Width(cardWidth).Render(head+"\n"+body))
			continue
		}

		line := head + "  " + theme.Hint.Render(cd.Sub)
		if c.closedHint != "" {
			line += "  " + theme.Hint.Render("· "+c.closedHint)
		}
		parts = append(parts, style.Width(cardWidth).Render(line))
	}
	return strings.Join(parts, "\n")
}

func (c *Cards) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Tarjeta"},
		{Key: fmt.Sprintf("Enter/1-%d", len(c.cards)), Description: "Abrir/cerrar"},
	}
}

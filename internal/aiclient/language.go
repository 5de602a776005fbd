package aiclient

import "fmt"

// Language holds the learner-facing texts for one answer language.
type Language struct {
	Code string
	Name string

	// Persona is the tutor's system instruction.
	Persona string

	// SearchSuffix is appended to every search query to pin the answer
	// language and shape.
	SearchSuffix string

	EmptyReply     string
	NoInformation  string
	SearchFailed   string
	ImageFailed    string
	ImageNoPayload string
	ImageNoPrompt  string
	ChatGreeting   string
	ChatFailure    string
}

var languages = map[string]Language{
	"es": {
		Code: "es",
		Name: "español",
		Persona: "Eres un profesor experto y amable de Historia de la Inteligencia Artificial. " +
			"Tu objetivo es explicar conceptos complejos de visión por computadora (CNN, Transformers, Difusión) " +
			"de manera sencilla y didáctica a estudiantes. Usa analogías. Sé conciso.",
		SearchSuffix:   ". Responde estrictamente en español. Resume los puntos clave.",
		EmptyReply:     "Lo siento, no pude generar una respuesta.",
		NoInformation:  "No se encontró información.",
		SearchFailed:   "Hubo un error al buscar información actualizada.",
		ImageFailed:    "Error al generar imagen. Intenta con un prompt más simple.",
		ImageNoPayload: "No se generó ninguna imagen. Intenta simplificar el prompt.",
		ImageNoPrompt:  "Escribe una descripción antes de generar.",
		ChatGreeting:   "¡Hola! Soy tu tutor de IA. ¿Tienes preguntas sobre la lección?",
		ChatFailure:    "Tuve un problema de conexión. Inténtalo de nuevo.",
	},
	"en": {
		Code: "en",
		Name: "English",
		Persona: "You are an expert and friendly teacher of the History of Artificial Intelligence. " +
			"Your goal is to explain complex computer vision concepts (CNNs, Transformers, Diffusion) " +
			"simply and didactically to students. Use analogies. Be concise.",
		SearchSuffix:   ". Answer strictly in English. Summarize the key points.",
		EmptyReply:     "Sorry, I couldn't generate an answer.",
		NoInformation:  "No information was found.",
		SearchFailed:   "There was an error searching for up-to-date information.",
		ImageFailed:    "Image generation failed. Try a simpler prompt.",
		ImageNoPayload: "No image was generated. Try simplifying the prompt.",
		ImageNoPrompt:  "Write a description before generating.",
		ChatGreeting:   "Hi! I'm your AI tutor. Any questions about the lesson?",
		ChatFailure:    "I had a connection problem. Please try again.",
	},
}

// LookupLanguage returns the texts for a language code.
func LookupLanguage(code string) (Language, error) {
	l, ok := languages[code]
	if !ok {
		return Language{}, fmt.Errorf("unsupported language %q", code)
	}
	return l, nil
}

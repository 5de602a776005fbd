package aiclient

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/visiontour/internal/chat"
	"github.com/abhisek/visiontour/internal/llm"
)

func newTestClient(t *testing.T, mock *llm.MockProvider) *Client {
	t.Helper()
	c, err := New(llm.Wrap("mock", mock, llm.RetryConfig{MaxAttempts: 1}, nil, nil), Options{Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RejectsUnknownLanguage(t *testing.T) {
	_, err := New(llm.Wrap("mock", llm.NewMockProvider(), llm.RetryConfig{}, nil, nil), Options{Language: "fr"})
	assert.Error(t, err)
}

func TestNew_RequiresChat(t *testing.T) {
	_, err := New(&llm.Backend{}, Options{})
	assert.Error(t, err)
}

func TestSendMessage_SendsPersonaAndFullHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Una CNN es como una lupa."})
	c := newTestClient(t, mock)

	history := []chat.Turn{
		{Role: chat.RoleModel, Parts: []string{"¡Hola!"}},
		{Role: chat.RoleUser, Parts: []string{"¿Qué es AlexNet?"}},
		{Role: chat.RoleModel, Parts: []string{"Una red de 2012."}},
	}
	reply, err := c.SendMessage(context.Background(), history, "¿Y una CNN?")
	require.NoError(t, err)
	assert.Equal(t, "Una CNN es como una lupa.", reply)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Contains(t, req.System, "Historia de la Inteligencia Artificial")
	require.Len(t, req.Messages, 4)
	assert.Equal(t, llm.RoleAssistant, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "¿Y una CNN?"}, req.Messages[3])
}

func TestSendMessage_EmptyReplyUsesApology(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  "})
	c := newTestClient(t, mock)

	reply, err := c.SendMessage(context.Background(), nil, "hola")
	require.NoError(t, err)
	assert.Equal(t, "Lo siento, no pude generar una respuesta.", reply)
}

func TestSendMessage_FailureIsCommunicationError(t *testing.T) {
	cause := &llm.ErrRejected{StatusCode: 403, Err: errors.New("bad key")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: cause})
	c := newTestClient(t, mock)

	_, err := c.SendMessage(context.Background(), nil, "hola")
	var commErr *CommunicationError
	require.ErrorAs(t, err, &commErr)
	var rej *llm.ErrRejected
	assert.ErrorAs(t, err, &rej, "cause stays reachable")
}

func TestSendMessage_EnglishPersona(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: ""})
	c, err := New(llm.Wrap("mock", mock, llm.RetryConfig{}, nil, nil), Options{Language: "en"})
	require.NoError(t, err)

	reply, err := c.SendMessage(context.Background(), nil, "hi")
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't generate an answer.", reply)
	assert.Contains(t, mock.Calls[0].System, "History of Artificial Intelligence")
}

func TestGenerateImage_Success(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	mock := llm.NewMockProvider()
	mock.AddImageResponse(llm.MockResponse{Images: []llm.InlineData{{MIMEType: "image/png", Data: png}}})
	c := newTestClient(t, mock)

	img, err := c.GenerateImage(context.Background(), "un gato astronauta")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png), img.DataURL())

	require.Equal(t, 1, mock.ImageCallCount())
	assert.Equal(t, llm.ImageRequest{Prompt: "un gato astronauta", AspectRatio: "1:1"}, mock.ImageCalls[0])
}

func TestGenerateImage_BlankPromptNeverCallsBackend(t *testing.T) {
	mock := llm.NewMockProvider()
	c := newTestClient(t, mock)

	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := c.GenerateImage(context.Background(), prompt)
		var genErr *GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Equal(t, 0, mock.ImageCallCount())
}

func TestGenerateImage_NoPayload(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddImageResponse(llm.MockResponse{Text: "solo texto"})
	c := newTestClient(t, mock)

	_, err := c.GenerateImage(context.Background(), "algo")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, "No se generó ninguna imagen. Intenta simplificar el prompt.", genErr.Message)
}

func TestGenerateImage_TransportFailure(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddImageResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}})
	c := newTestClient(t, mock)

	_, err := c.GenerateImage(context.Background(), "algo")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "Error al generar imagen. Intenta con un prompt más simple.", genErr.Message)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerateImage_ChatOnlyProvider(t *testing.T) {
	c, err := New(&llm.Backend{Provider: "openai", Chat: llm.NewMockProvider()}, Options{})
	require.NoError(t, err)
	assert.False(t, c.CanGenerateImages())

	_, err = c.GenerateImage(context.Background(), "algo")
	var unsupported *llm.ErrCapabilityUnsupported
	assert.ErrorAs(t, err, &unsupported)
}

func TestSearchGroundedAnswer(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddSearchResponse(llm.MockResponse{
		Text:    "Sora fue anunciado en 2024.",
		Sources: []llm.Source{{Title: "OpenAI", URI: "https://openai.com/sora"}},
	})
	c := newTestClient(t, mock)

	res := c.SearchGroundedAnswer(context.Background(), "Noticias de Sora")
	assert.False(t, res.Degraded)
	assert.Equal(t, "Sora fue anunciado en 2024.", res.Text)
	assert.Equal(t, []Source{{Title: "OpenAI", URI: "https://openai.com/sora"}}, res.Sources)

	require.Equal(t, 1, mock.SearchCallCount())
	sent := mock.SearchCalls[0].Messages[0].Content
	assert.True(t, strings.HasPrefix(sent, "Noticias de Sora"))
	assert.True(t, strings.HasSuffix(sent, ". Responde estrictamente en español. Resume los puntos clave."))
}

func TestSearchGroundedAnswer_EmptyText(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddSearchResponse(llm.MockResponse{})
	c := newTestClient(t, mock)

	res := c.SearchGroundedAnswer(context.Background(), "q")
	assert.Equal(t, "No se encontró información.", res.Text)
	assert.Empty(t, res.Sources)
	assert.False(t, res.Degraded)
}

func TestSearchGroundedAnswer_FailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddSearchResponse(llm.MockResponse{Err: errors.New("network down")})
	c := newTestClient(t, mock)

	res := c.SearchGroundedAnswer(context.Background(), "q")
	assert.True(t, res.Degraded)
	assert.Equal(t, "Hubo un error al buscar información actualizada.", res.Text)
	assert.Empty(t, res.Sources)
}

func TestSearchGroundedAnswer_ChatOnlyProvider(t *testing.T) {
	c, err := New(&llm.Backend{Provider: "anthropic", Chat: llm.NewMockProvider()}, Options{})
	require.NoError(t, err)

	res := c.SearchGroundedAnswer(context.Background(), "q")
	assert.True(t, res.Degraded)
}

func TestImage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	img := &Image{MIMEType: "image/jpeg", Data: []byte("jpeg-bytes")}

	path, err := img.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestLookupLanguage(t *testing.T) {
	es, err := LookupLanguage("es")
	require.NoError(t, err)
	assert.Equal(t, "¡Hola! Soy tu tutor de IA. ¿Tienes preguntas sobre la lección?", es.ChatGreeting)
	assert.Equal(t, "Tuve un problema de conexión. Inténtalo de nuevo.", es.ChatFailure)

	_, err = LookupLanguage("de")
	assert.Error(t, err)
}

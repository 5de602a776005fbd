package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return &GeminiProvider{
		client:      client,
		model:       "gemini-3-pro-preview",
		imageModel:  "gemini-2.5-flash-image",
		searchModel: "gemini-3-flash-preview",
	}
}

func writeGeminiJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-image", "gemini-2.5-flash-image"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiProvider_Generate(t *testing.T) {
	var body map[string]any
	var path string
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		writeGeminiJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Una CNN mira la imagen por partes."}},
				},
				"finishReason": "STOP",
			}},
			"usageMetadata": map[string]any{
				"promptTokenCount":     12,
				"candidatesTokenCount": 8,
				"totalTokenCount":      20,
			},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System: "Eres un profesor.",
		Messages: []Message{
			{Role: RoleUser, Content: "Hola"},
			{Role: RoleAssistant, Content: "¡Hola!"},
			{Role: RoleUser, Content: "¿Qué es una CNN?"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Una CNN mira la imagen por partes." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 8 || resp.Usage.TotalTokens != 20 {
		t.Fatalf("unexpected usage %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
	if !strings.Contains(path, "gemini-3-pro-preview:generateContent") {
		t.Fatalf("unexpected request path %q", path)
	}

	contents, _ := body["contents"].([]any)
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	second, _ := contents[1].(map[string]any)
	if second["role"] != "model" {
		t.Fatalf("assistant turn should map to role model, got %v", second["role"])
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Fatal("expected systemInstruction in request body")
	}
}

func TestGeminiProvider_GenerateImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	var body map[string]any
	var path string
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		writeGeminiJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role": "model",
					"parts": []map[string]any{
						{"text": "Aquí está tu robot."},
						{"inlineData": map[string]any{
							"mimeType": "image/png",
							"data":     base64.StdEncoding.EncodeToString(png),
						}},
					},
				},
				"finishReason": "STOP",
			}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "un robot", AspectRatio: "1:1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(resp.Images))
	}
	if resp.Images[0].MIMEType != "image/png" || string(resp.Images[0].Data) != string(png) {
		t.Fatalf("unexpected image %+v", resp.Images[0])
	}
	if resp.Text != "Aquí está tu robot." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	if !strings.Contains(path, "gemini-2.5-flash-image:generateContent") {
		t.Fatalf("unexpected request path %q", path)
	}
	gen, _ := body["generationConfig"].(map[string]any)
	img, _ := gen["imageConfig"].(map[string]any)
	if img["aspectRatio"] != "1:1" {
		t.Fatalf("expected aspect ratio 1:1 in request, got %v", body["generationConfig"])
	}
}

func TestGeminiProvider_GenerateImage_NoPayload(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeGeminiJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "No puedo dibujar eso."}},
				},
				"finishReason": "STOP",
			}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.GenerateImage(context.Background(), ImageRequest{Prompt: "algo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Images) != 0 {
		t.Fatalf("expected no images, got %d", len(resp.Images))
	}
}

func TestGeminiProvider_GenerateGrounded(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		writeGeminiJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Sora genera video a partir de texto."}},
				},
				"finishReason": "STOP",
				"groundingMetadata": map[string]any{
					"groundingChunks": []map[string]any{
						{"web": map[string]any{"uri": "https://openai.com/sora", "title": "Sora"}},
						{"web": map[string]any{"uri": "https://example.com/untitled"}},
						{"web": map[string]any{"title": "Sin enlace"}},
						{"web": map[string]any{"uri": "https://deepmind.google/veo", "title": "Veo"}},
					},
				},
			}},
		})
	}

	p := newTestGeminiProvider(t, handler)
	resp, err := p.GenerateGrounded(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Sora"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Sora genera video a partir de texto." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
	want := []Source{
		{Title: "Sora", URI: "https://openai.com/sora"},
		{Title: "Veo", URI: "https://deepmind.google/veo"},
	}
	if len(resp.Sources) != len(want) {
		t.Fatalf("expected %d sources, got %+v", len(want), resp.Sources)
	}
	for i := range want {
		if resp.Sources[i] != want[i] {
			t.Errorf("source %d = %+v, want %+v", i, resp.Sources[i], want[i])
		}
	}
	tools, _ := body["tools"].([]any)
	if len(tools) != 1 {
		t.Fatalf("expected search tool in request, got %v", body["tools"])
	}
	tool, _ := tools[0].(map[string]any)
	if _, ok := tool["googleSearch"]; !ok {
		t.Fatalf("expected googleSearch tool, got %v", tool)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", http.StatusServiceUnavailable, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad request", http.StatusBadRequest, func(err error) bool {
			var e *ErrRejected
			return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.status, "message": "boom", "status": "ERROR"},
				})
			}
			p := newTestGeminiProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type: %T (%v)", err, err)
			}
		})
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(context.Background(), GeminiConfig{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

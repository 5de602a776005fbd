package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-pro":   "gemini-3-pro-preview",
	"gemini-flash": "gemini-3-flash-preview",
	"gemini-image": "gemini-2.5-flash-image",
}

// GeminiProvider implements Provider, ImageGenerator and SearchGrounder using
// the Google Gen AI SDK.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	imageModel  string
	searchModel string
}

var (
	_ Provider       = (*GeminiProvider)(nil)
	_ ImageGenerator = (*GeminiProvider)(nil)
	_ SearchGrounder = (*GeminiProvider)(nil)
)

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		model:       resolveModel(cfg.Model, geminiModels),
		imageModel:  resolveModel(cfg.ImageModel, geminiModels),
		searchModel: resolveModel(cfg.SearchModel, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGeminiContents(req.Messages), buildGeminiConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return geminiResponse(result, p.model), nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// GenerateImage runs a single-turn image synthesis request. A response
// without inline image data is not an error at this level; callers decide.
func (p *GeminiProvider) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	config := &genai.GenerateContentConfig{}
	if req.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.Prompt}},
	}}

	result, err := p.client.Models.GenerateContent(ctx, p.imageModel, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	resp := &ImageResponse{
		Model:      p.imageModel,
		StopReason: mapGeminiStopReason(result),
		Usage:      geminiUsage(result),
	}
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			switch {
			case part.InlineData != nil:
				resp.Images = append(resp.Images, InlineData{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				})
			case part.Text != "" && !part.Thought:
				resp.Text += part.Text
			}
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ImageModelID() string {
	return p.imageModel
}

// GenerateGrounded answers with the Google Search tool enabled and returns
// the web sources from the grounding metadata.
func (p *GeminiProvider) GenerateGrounded(ctx context.Context, req Request) (*GroundedResponse, error) {
	config := buildGeminiConfig(req)
	config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}

	result, err := p.client.Models.GenerateContent(ctx, p.searchModel, buildGeminiContents(req.Messages), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return &GroundedResponse{
		Response: *geminiResponse(result, p.searchModel),
		Sources:  geminiSources(result),
	}, nil
}

func (p *GeminiProvider) SearchModelID() string {
	return p.searchModel
}

func buildGeminiConfig(req Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	return config
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

func geminiResponse(result *genai.GenerateContentResponse, model string) *Response {
	return &Response{
		Text:       result.Text(),
		Model:      model,
		StopReason: mapGeminiStopReason(result),
		Usage:      geminiUsage(result),
	}
}

func geminiUsage(result *genai.GenerateContentResponse) Usage {
	if result.UsageMetadata == nil {
		return Usage{}
	}
	return Usage{
		InputTokens:  int(result.UsageMetadata.PromptTokenCount),
		OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
	}
}

// geminiSources extracts web grounding chunks that carry both a title and a
// URI, in the order the model returned them.
func geminiSources(result *genai.GenerateContentResponse) []Source {
	if len(result.Candidates) == 0 || result.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []Source
	for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		if chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case genai.FinishReasonStop:
			return "end"
		case genai.FinishReasonMaxTokens:
			return "max_tokens"
		case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonImageSafety:
			return "safety"
		}
	}
	return "end"
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.Code >= 500:
			return &ErrProviderUnavailable{Err: err}
		case apiErr.Code >= 400:
			return &ErrRejected{StatusCode: apiErr.Code, Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

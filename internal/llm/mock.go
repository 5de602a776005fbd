package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text    string
	Images  []InlineData
	Sources []Source
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic provider for testing. It serves chat,
// image and search calls from three FIFO queues and records every request.
type MockProvider struct {
	mu          sync.Mutex
	responses   []MockResponse
	images      []MockResponse
	searches    []MockResponse
	Calls       []Request
	ImageCalls  []ImageRequest
	SearchCalls []Request
}

var (
	_ Provider       = (*MockProvider)(nil)
	_ ImageGenerator = (*MockProvider)(nil)
	_ SearchGrounder = (*MockProvider)(nil)
)

// NewMockProvider creates a MockProvider with the given canned chat responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned chat response or ErrProviderUnavailable
// if the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	resp, err := pop(&m.responses)
	if err != nil {
		return nil, err
	}
	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// GenerateImage returns the next canned image response.
func (m *MockProvider) GenerateImage(_ context.Context, req ImageRequest) (*ImageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImageCalls = append(m.ImageCalls, req)

	resp, err := pop(&m.images)
	if err != nil {
		return nil, err
	}
	return &ImageResponse{
		Images:     resp.Images,
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      "mock-image",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ImageModelID() string {
	return "mock-image"
}

// GenerateGrounded returns the next canned search response.
func (m *MockProvider) GenerateGrounded(_ context.Context, req Request) (*GroundedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls = append(m.SearchCalls, req)

	resp, err := pop(&m.searches)
	if err != nil {
		return nil, err
	}
	return &GroundedResponse{
		Response: Response{
			Text:       resp.Text,
			Usage:      resp.Usage,
			Model:      "mock-search",
			StopReason: "end",
		},
		Sources: resp.Sources,
	}, nil
}

func (m *MockProvider) SearchModelID() string {
	return "mock-search"
}

// AddResponse appends a canned chat response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddImageResponse appends a canned image response to the queue.
func (m *MockProvider) AddImageResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = append(m.images, resp)
}

// AddSearchResponse appends a canned search response to the queue.
func (m *MockProvider) AddSearchResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ImageCallCount returns the number of GenerateImage calls made.
func (m *MockProvider) ImageCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ImageCalls)
}

// SearchCallCount returns the number of GenerateGrounded calls made.
func (m *MockProvider) SearchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SearchCalls)
}

func pop(queue *[]MockResponse) (MockResponse, error) {
	if len(*queue) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{}
	}
	resp := (*queue)[0]
	*queue = (*queue)[1:]
	if resp.Err != nil {
		return MockResponse{}, resp.Err
	}
	return resp, nil
}

package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match (empty = any)
}

// AIRequestEventData captures the data for a single AI backend call.
type AIRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AIRequestEvent is a stored AI backend call.
type AIRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AIRequestEventData
}

// UsageByPurpose aggregates AI calls for one purpose label.
type UsageByPurpose struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// UsageByModel aggregates AI calls for one model.
type UsageByModel struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Tour actions recorded as tour events.
const (
	TourStart    = "start"
	TourAdvance  = "advance"
	TourBack     = "back"
	TourInteract = "interact"
	TourRestart  = "restart"
	TourFinish   = "finish"
	TourQuit     = "quit"
)

// TourEventData captures one step of a learner's walk through the deck.
type TourEventData struct {
	TourID     string
	Action     string
	SlideIndex int
	SlideKind  string
}

// TourEvent is a stored tour step.
type TourEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TourEventData
}

// TourSummary aggregates the events of one tour.
type TourSummary struct {
	TourID        string
	StartedAt     time.Time
	LastEventAt   time.Time
	Events        int
	Interactions  int
	FurthestSlide int
	Finished      bool
}

// EventRepo provides append and query access to stored events.
type EventRepo interface {
	// AppendAIRequest records an AI backend call.
	AppendAIRequest(ctx context.Context, data AIRequestEventData) error

	// QueryAIRequests returns recent AI calls, newest first.
	QueryAIRequests(ctx context.Context, opts QueryOpts) ([]AIRequestEvent, error)

	// GetAIRequest returns a single AI call by ID, or nil if not found.
	GetAIRequest(ctx context.Context, id int) (*AIRequestEvent, error)

	// AIUsageByPurpose aggregates token usage per purpose label.
	AIUsageByPurpose(ctx context.Context) ([]UsageByPurpose, error)

	// AIUsageByModel aggregates token usage per model.
	AIUsageByModel(ctx context.Context) ([]UsageByModel, error)

	// AppendTourEvent records a tour step.
	AppendTourEvent(ctx context.Context, data TourEventData) error

	// TourEvents returns the events of one tour in sequence order.
	TourEvents(ctx context.Context, tourID string) ([]TourEvent, error)

	// RecentTours summarizes the most recent tours, newest first.
	RecentTours(ctx context.Context, limit int) ([]TourSummary, error)
}

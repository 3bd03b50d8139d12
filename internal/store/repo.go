package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/examdrill/internal/quiz"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Category string    // results only: exact category match
	Purpose  string    // LLM events only: exact purpose match
}

// CategoryStat aggregates stored results for one category.
type CategoryStat struct {
	Category    string
	Attempts    int
	BestScore   int
	AvgAccuracy float64 // percent
	LastPlayed  time.Time
}

// ResultRepo persists completed quiz results. It satisfies quiz.ResultSink.
type ResultRepo interface {
	// SaveResult stores a result. Saving the same session twice fails.
	SaveResult(ctx context.Context, r *quiz.Result) error

	// GetResult returns the result for sessionID, or ErrNotFound.
	GetResult(ctx context.Context, sessionID string) (*quiz.Result, error)

	// QueryResults returns results newest first.
	QueryResults(ctx context.Context, opts QueryOpts) ([]*quiz.Result, error)

	// CategoryStats aggregates results per category, ordered by category.
	CategoryStats(ctx context.Context) ([]CategoryStat, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
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

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one model or purpose.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
}

var _ quiz.ResultSink = ResultRepo(nil)

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"
	"teamdigest-backend/pkg/ai"
	"teamdigest-backend/pkg/graph"
)

// ErrNothingToSummarize is the expected outcome when the requested range
// holds no cached messages. It is not a system fault; callers surface it
// as "nothing to summarize" and no model call is made.
var ErrNothingToSummarize = errors.New("no messages in the requested range")

// ValidationError reports malformed caller input with field-level detail.
// It is raised before any external call is made.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// SummarizeResult is what one successful pipeline pass returns.
type SummarizeResult struct {
	SummaryID    string           `json:"summary_id"`
	RawText      string           `json:"raw_text"`
	Sections     ai.SummaryOutput `json:"sections"`
	MessageCount int              `json:"message_count"`
	NewMessages  int              `json:"new_messages"`
}

// ChatUsecase composes the remote client, the cache and the summarizer
// into the sync-and-summarize pipeline, plus the conversation bookkeeping
// around it.
type ChatUsecase interface {
	// RegisterConversation starts (or resumes) tracking a conversation.
	RegisterConversation(conv *chatdomain.MonitoredConversation) error
	// IgnoreConversation stops tracking without deleting cached data.
	IgnoreConversation(id string) error
	// ListMonitored returns all actively tracked conversations.
	ListMonitored() ([]chatdomain.MonitoredConversation, error)
	// DiscoverConversations lists remote conversations with recent
	// activity, for the presentation layer to offer as candidates.
	DiscoverConversations(ctx context.Context, activitySince time.Duration, limit int) ([]graph.Conversation, error)
	// SyncAndSummarize runs one full pipeline pass for the date range
	// (inclusive, "2006-01-02" dates): fetch since the last cached
	// message, cache, read back the range, summarize, persist.
	SyncAndSummarize(ctx context.Context, conversationID, startDate, endDate string) (*SummarizeResult, error)
	// LatestSummary returns the most recent stored summary, or nil.
	LatestSummary(conversationID string) (*chatdomain.Summary, error)
}

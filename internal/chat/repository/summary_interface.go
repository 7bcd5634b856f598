package repository

import (
	chatdomain "teamdigest-backend/internal/chat/domain"
)

// SummaryRepository defines the operations for generated summaries
type SummaryRepository interface {
	// Save appends a new summary row and returns its id. Summaries are
	// never updated in place; overlapping periods produce extra rows.
	Save(summary *chatdomain.Summary) (string, error)
	// GetLatest returns the most recent summary by period start, ties
	// broken by generation time, or nil when none exists.
	GetLatest(conversationID string) (*chatdomain.Summary, error)
	// ListByConversation returns all summaries for a conversation,
	// newest period first.
	ListByConversation(conversationID string) ([]chatdomain.Summary, error)
}

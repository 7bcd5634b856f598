package graph

import (
	"context"
	"sort"
	"time"
)

// FixtureClient is a ConversationSource backed by canned in-memory data,
// for development environments without live credentials. It performs no
// network IO and keeps the live client's filtering and ordering semantics
// so callers behave identically against either implementation.
type FixtureClient struct {
	Conversations []Conversation
	Messages      map[string][]Message
}

// NewFixtureClient returns a fixture seeded with a small release-planning
// scenario. Timestamps are anchored to the current day so the data stays
// inside freshly chosen date ranges.
func NewFixtureClient() *FixtureClient {
	now := time.Now().UTC()
	base := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, time.UTC)

	return &FixtureClient{
		Conversations: []Conversation{
			{
				ID:          "fixture-release-planning",
				Topic:       "Release Planning",
				ChatType:    "group",
				LastUpdated: base.Add(3 * time.Hour),
			},
			{
				ID:          "fixture-alice-dm",
				Topic:       "Alice",
				ChatType:    "oneOnOne",
				LastUpdated: base.Add(-48 * time.Hour),
			},
		},
		Messages: map[string][]Message{
			"fixture-release-planning": {
				{
					ID:             "fixture-msg-1",
					ConversationID: "fixture-release-planning",
					AuthorName:     "Alice",
					Body:           "Can we lock the deployment window? I'd propose Friday 14:00.",
					CreatedTime:    base,
				},
				{
					ID:             "fixture-msg-2",
					ConversationID: "fixture-release-planning",
					AuthorName:     "Bob",
					Body:           "Friday works. I'll prepare the rollback plan beforehand.",
					CreatedTime:    base.Add(30 * time.Minute),
				},
				{
					ID:             "fixture-msg-3",
					ConversationID: "fixture-release-planning",
					AuthorName:     "Alice",
					Body:           "Decided then: we deploy Friday. @Bob owns the rollback plan.",
					CreatedTime:    base.Add(1 * time.Hour),
				},
			},
			"fixture-alice-dm": {
				{
					ID:             "fixture-msg-4",
					ConversationID: "fixture-alice-dm",
					AuthorName:     "Alice",
					Body:           "Lunch tomorrow?",
					CreatedTime:    base.Add(-49 * time.Hour),
				},
			},
		},
	}
}

// ListConversations implements ConversationSource.
func (f *FixtureClient) ListConversations(ctx context.Context, activitySince time.Duration, limit int) ([]Conversation, error) {
	cutoff := time.Now().Add(-activitySince)

	conversations := make([]Conversation, 0, len(f.Conversations))
	for _, conv := range f.Conversations {
		if conv.LastUpdated.Before(cutoff) {
			continue
		}
		conversations = append(conversations, conv)
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastUpdated.After(conversations[j].LastUpdated)
	})
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}
	return conversations, nil
}

// ListMessages implements ConversationSource.
func (f *FixtureClient) ListMessages(ctx context.Context, conversationID string, since *time.Time) ([]Message, error) {
	var messages []Message
	for _, msg := range f.Messages[conversationID] {
		if since != nil && !msg.CreatedTime.After(*since) {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

var _ ConversationSource = (*FixtureClient)(nil)
var _ ConversationSource = (*Client)(nil)

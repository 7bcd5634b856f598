package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"
	"teamdigest-backend/internal/chat/repository"
	"teamdigest-backend/pkg/ai"
	"teamdigest-backend/pkg/graph"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// chatUsecase implements ChatUsecase interface
type chatUsecase struct {
	source        graph.ConversationSource
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	summaries     repository.SummaryRepository
	summarizer    ai.SummarizerService
	logger        zerolog.Logger
}

// NewChatUsecase creates a new instance of chatUsecase
func NewChatUsecase(
	source graph.ConversationSource,
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	summaries repository.SummaryRepository,
	summarizer ai.SummarizerService,
	logger zerolog.Logger,
) ChatUsecase {
	return &chatUsecase{
		source:        source,
		conversations: conversations,
		messages:      messages,
		summaries:     summaries,
		summarizer:    summarizer,
		logger:        logger.With().Str("component", "chat").Logger(),
	}
}

// RegisterConversation implements ChatUsecase.
func (u *chatUsecase) RegisterConversation(conv *chatdomain.MonitoredConversation) error {
	if conv == nil || conv.ID == "" {
		return &ValidationError{Field: "conversation_id", Detail: "must not be empty"}
	}
	return u.conversations.Upsert(conv)
}

// IgnoreConversation implements ChatUsecase.
func (u *chatUsecase) IgnoreConversation(id string) error {
	if id == "" {
		return &ValidationError{Field: "conversation_id", Detail: "must not be empty"}
	}
	return u.conversations.Deactivate(id)
}

// ListMonitored implements ChatUsecase.
func (u *chatUsecase) ListMonitored() ([]chatdomain.MonitoredConversation, error) {
	return u.conversations.ListActive()
}

// DiscoverConversations implements ChatUsecase.
func (u *chatUsecase) DiscoverConversations(ctx context.Context, activitySince time.Duration, limit int) ([]graph.Conversation, error) {
	return u.source.ListConversations(ctx, activitySince, limit)
}

// LatestSummary implements ChatUsecase.
func (u *chatUsecase) LatestSummary(conversationID string) (*chatdomain.Summary, error) {
	if conversationID == "" {
		return nil, &ValidationError{Field: "conversation_id", Detail: "must not be empty"}
	}
	return u.summaries.GetLatest(conversationID)
}

// SyncAndSummarize implements ChatUsecase. One synchronous pass:
// fetch-since-last-sync, cache, query-range, summarize, persist. Every
// step failure aborts the pass and propagates as that layer's error.
func (u *chatUsecase) SyncAndSummarize(ctx context.Context, conversationID, startDate, endDate string) (*SummarizeResult, error) {
	start, end, err := parsePeriod(conversationID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Fetch everything newer than the last cached message; a cold cache
	// fetches from the beginning.
	since, err := u.messages.LatestMessageTime(conversationID)
	if err != nil {
		return nil, err
	}
	fetched, err := u.source.ListMessages(ctx, conversationID, since)
	if err != nil {
		return nil, err
	}

	newCount := 0
	for _, msg := range fetched {
		inserted, err := u.messages.Save(toCachedMessage(msg))
		if err != nil {
			return nil, err
		}
		if inserted {
			newCount++
		}
	}

	// Read the range back from the cache so the summary reflects the
	// full cache state, not just the batch fetched above.
	cached, err := u.messages.GetMessagesInRange(conversationID, start, end)
	if err != nil {
		return nil, err
	}
	if len(cached) == 0 {
		return nil, fmt.Errorf("%w for %s between %s and %s", ErrNothingToSummarize, conversationID, startDate, endDate)
	}

	periodLabel := fmt.Sprintf("%s to %s", startDate, endDate)
	raw, err := u.summarizer.GenerateSummary(ctx, cached, periodLabel)
	if err != nil {
		return nil, err
	}
	sections := ai.ParseSummaryResponse(raw)

	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("serialize sections: %w", err)
	}

	summaryID, err := u.summaries.Save(&chatdomain.Summary{
		ConversationID: conversationID,
		PeriodStart:    start,
		PeriodEnd:      end,
		RawText:        raw,
		SectionsJSON:   string(sectionsJSON),
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info().
		Str("conversation_id", conversationID).
		Str("summary_id", summaryID).
		Str("provider", u.summarizer.Name()).
		Int("new_messages", newCount).
		Int("message_count", len(cached)).
		Msg("summary generated")

	return &SummarizeResult{
		SummaryID:    summaryID,
		RawText:      raw,
		Sections:     sections,
		MessageCount: len(cached),
		NewMessages:  newCount,
	}, nil
}

// parsePeriod validates the caller input before any external call.
func parsePeriod(conversationID, startDate, endDate string) (time.Time, time.Time, error) {
	if conversationID == "" {
		return time.Time{}, time.Time{}, &ValidationError{Field: "conversation_id", Detail: "must not be empty"}
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "start_date", Detail: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "end_date", Detail: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, &ValidationError{Field: "end_date", Detail: "must not be before start_date"}
	}
	return start, end, nil
}

func toCachedMessage(msg graph.Message) *chatdomain.CachedMessage {
	cached := &chatdomain.CachedMessage{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		CreatedTime:    msg.CreatedTime,
		FetchedAt:      time.Now(),
	}
	if msg.AuthorName != "" {
		author := msg.AuthorName
		cached.AuthorName = &author
	}
	if msg.Body != "" {
		body := msg.Body
		cached.Body = &body
	}
	return cached
}

package repository

import (
	chatdomain "teamdigest-backend/internal/chat/domain"
)

// ConversationRepository defines the operations for monitored conversations
type ConversationRepository interface {
	// Upsert registers interest in a conversation. Keyed by conversation
	// id: a re-registration updates name/type and reactivates a
	// previously ignored conversation.
	Upsert(conv *chatdomain.MonitoredConversation) error
	// Deactivate flips the conversation to ignored without deleting rows.
	Deactivate(id string) error
	// GetByID returns the conversation, or nil when unknown.
	GetByID(id string) (*chatdomain.MonitoredConversation, error)
	// ListActive returns all conversations currently being tracked.
	ListActive() ([]chatdomain.MonitoredConversation, error)
}

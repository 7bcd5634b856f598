package repository

import (
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"
)

// MessageRepository defines the operations for the message cache
type MessageRepository interface {
	// Save inserts a fetched message, keyed by its remote id. A second
	// insert with the same id is silently skipped and reports false;
	// it is never an error and never a duplicate row.
	Save(msg *chatdomain.CachedMessage) (inserted bool, err error)
	// GetMessages returns a conversation's messages ordered by creation
	// time ascending, optionally restricted to those created strictly
	// after since. This is the incremental-sync filter; day-granularity
	// reads go through GetMessagesInRange instead.
	GetMessages(conversationID string, since *time.Time) ([]chatdomain.CachedMessage, error)
	// GetMessagesInRange returns messages between two dates, inclusive
	// on both day boundaries: a message at 00:00:00 on the start date
	// and one at 23:59:59 on the end date are both included.
	GetMessagesInRange(conversationID string, startDate, endDate time.Time) ([]chatdomain.CachedMessage, error)
	// LatestMessageTime returns the creation time of the newest cached
	// message, or nil when nothing is cached yet.
	LatestMessageTime(conversationID string) (*time.Time, error)
}

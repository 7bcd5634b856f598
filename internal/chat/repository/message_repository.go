package repository

import (
	"errors"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

// Save inserts the message unless its remote id is already cached.
func (r *messageRepository) Save(msg *chatdomain.CachedMessage) (bool, error) {
	if msg.FetchedAt.IsZero() {
		msg.FetchedAt = time.Now()
	}

	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(msg)
	if result.Error != nil {
		return false, cacheErr("save message", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetMessages returns the conversation's messages, oldest first. A non-nil
// since restricts the result to messages created strictly after it.
func (r *messageRepository) GetMessages(conversationID string, since *time.Time) ([]chatdomain.CachedMessage, error) {
	query := r.db.Where("conversation_id = ?", conversationID)
	if since != nil {
		query = query.Where("created_time > ?", *since)
	}

	var messages []chatdomain.CachedMessage
	if err := query.Order("created_time ASC").Find(&messages).Error; err != nil {
		return nil, cacheErr("get messages", err)
	}
	return messages, nil
}

// GetMessagesInRange returns messages from startDate through endDate at day
// granularity, both boundaries inclusive.
func (r *messageRepository) GetMessagesInRange(conversationID string, startDate, endDate time.Time) ([]chatdomain.CachedMessage, error) {
	from := dayStart(startDate)
	until := dayStart(endDate).AddDate(0, 0, 1)

	var messages []chatdomain.CachedMessage
	err := r.db.Where("conversation_id = ? AND created_time >= ? AND created_time < ?", conversationID, from, until).
		Order("created_time ASC").
		Find(&messages).Error
	if err != nil {
		return nil, cacheErr("get messages in range", err)
	}
	return messages, nil
}

// LatestMessageTime returns the newest cached creation time, nil when the
// conversation has no cached messages.
func (r *messageRepository) LatestMessageTime(conversationID string) (*time.Time, error) {
	var msg chatdomain.CachedMessage
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_time DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cacheErr("latest message time", err)
	}
	return &msg.CreatedTime, nil
}

// dayStart truncates t to midnight in its own location.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package repository

import (
	"errors"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"

	"gorm.io/gorm"
)

// conversationRepository implements ConversationRepository interface
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new instance of conversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{
		db: db,
	}
}

// Upsert registers or re-registers a conversation, keyed by its id.
func (r *conversationRepository) Upsert(conv *chatdomain.MonitoredConversation) error {
	var existing chatdomain.MonitoredConversation
	err := r.db.Where("id = ?", conv.ID).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if conv.Status == "" {
			conv.Status = chatdomain.StatusActive
		}
		if conv.CreatedAt.IsZero() {
			conv.CreatedAt = time.Now()
		}
		if err := r.db.Create(conv).Error; err != nil {
			return cacheErr("upsert conversation", err)
		}
		return nil
	} else if err != nil {
		return cacheErr("upsert conversation", err)
	}

	// Re-registration updates name/type and reactivates.
	existing.DisplayName = conv.DisplayName
	if conv.ChatType != "" {
		existing.ChatType = conv.ChatType
	}
	existing.Status = chatdomain.StatusActive
	if err := r.db.Save(&existing).Error; err != nil {
		return cacheErr("upsert conversation", err)
	}
	return nil
}

// Deactivate sets the conversation's status to ignored.
func (r *conversationRepository) Deactivate(id string) error {
	result := r.db.Model(&chatdomain.MonitoredConversation{}).
		Where("id = ?", id).
		Update("status", chatdomain.StatusIgnored)
	if result.Error != nil {
		return cacheErr("deactivate conversation", result.Error)
	}
	return nil
}

// GetByID returns the conversation, or nil when it was never registered.
func (r *conversationRepository) GetByID(id string) (*chatdomain.MonitoredConversation, error) {
	var conv chatdomain.MonitoredConversation
	err := r.db.Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cacheErr("get conversation", err)
	}
	return &conv, nil
}

// ListActive returns all tracked conversations, most recently registered
// first.
func (r *conversationRepository) ListActive() ([]chatdomain.MonitoredConversation, error) {
	var convs []chatdomain.MonitoredConversation
	err := r.db.Where("status = ?", chatdomain.StatusActive).
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, cacheErr("list conversations", err)
	}
	return convs, nil
}

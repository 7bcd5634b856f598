package repository

import (
	"errors"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// summaryRepository implements SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new instance of summaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{
		db: db,
	}
}

// Save appends a new summary row, append-only.
func (r *summaryRepository) Save(summary *chatdomain.Summary) (string, error) {
	if summary.ID == "" {
		summary.ID = uuid.New().String()
	}
	if summary.CreatedAt.IsZero() {
		summary.CreatedAt = time.Now()
	}

	if err := r.db.Create(summary).Error; err != nil {
		return "", cacheErr("save summary", err)
	}
	return summary.ID, nil
}

// GetLatest returns the most recent summary, or nil when the conversation
// has never been summarized.
func (r *summaryRepository) GetLatest(conversationID string) (*chatdomain.Summary, error) {
	var summary chatdomain.Summary
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("period_start DESC").
		Order("created_at DESC").
		First(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, cacheErr("get latest summary", err)
	}
	return &summary, nil
}

// ListByConversation returns the full summary history, newest period first.
func (r *summaryRepository) ListByConversation(conversationID string) ([]chatdomain.Summary, error) {
	var summaries []chatdomain.Summary
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("period_start DESC").
		Order("created_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, cacheErr("list summaries", err)
	}
	return summaries, nil
}

package domain

import "time"

// Summary stores one AI-generated digest for a conversation and period.
// Rows are append-only: regenerating a summary for an overlapping period
// inserts a new row rather than updating an old one, so history is kept.
type Summary struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"index:idx_conv_period;not null"`
	PeriodStart    time.Time `json:"period_start" gorm:"index:idx_conv_period;not null"`
	PeriodEnd      time.Time `json:"period_end" gorm:"not null"`
	RawText        string    `json:"raw_text" gorm:"type:text"`
	SectionsJSON   string    `json:"sections_json" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

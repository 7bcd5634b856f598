package domain

import "time"

// CachedMessage is one chat message ingested from the remote platform.
// The ID is the remote message id and is unique across the whole cache;
// inserting the same id twice is a no-op, so rows are never duplicated
// and never mutated after the first insert.
type CachedMessage struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"index:idx_conv_created;not null"`
	AuthorName     *string   `json:"author_name,omitempty" gorm:"size:256"`
	Body           *string   `json:"body,omitempty" gorm:"type:text"`
	CreatedTime    time.Time `json:"created_time" gorm:"index:idx_conv_created;not null"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// TableName specifies the table name for GORM
func (CachedMessage) TableName() string {
	return "cached_messages"
}

package domain

import "time"

// Chat type values as reported by the Graph API.
const (
	ChatTypeOneOnOne = "oneOnOne"
	ChatTypeGroup    = "group"
)

// Conversation status values.
const (
	StatusActive  = "active"
	StatusIgnored = "ignored"
)

// MonitoredConversation is a remote chat the user asked us to track.
// The ID is the opaque chat id assigned by the remote platform.
type MonitoredConversation struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	DisplayName string    `json:"display_name" gorm:"size:256"`
	ChatType    string    `json:"chat_type" gorm:"size:16;default:group"`
	Status      string    `json:"status" gorm:"size:16;default:active;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (MonitoredConversation) TableName() string {
	return "monitored_conversations"
}

// Active reports whether the conversation is currently tracked.
func (c *MonitoredConversation) Active() bool {
	return c.Status == StatusActive
}

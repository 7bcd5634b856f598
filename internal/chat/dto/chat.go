package dto

import (
	chatdomain "teamdigest-backend/internal/chat/domain"
	"teamdigest-backend/pkg/graph"
)

type RegisterConversationRequest struct {
	ID          string `json:"id" binding:"required"`
	DisplayName string `json:"display_name"`
	ChatType    string `json:"chat_type"`
}

type SummarizeRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type ConversationsResponse struct {
	Conversations []chatdomain.MonitoredConversation `json:"conversations"`
}

type DiscoverResponse struct {
	Conversations []graph.Conversation `json:"conversations"`
}

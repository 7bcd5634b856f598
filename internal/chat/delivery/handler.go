package delivery

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	chatdomain "teamdigest-backend/internal/chat/domain"
	"teamdigest-backend/internal/chat/dto"
	"teamdigest-backend/internal/chat/repository"
	"teamdigest-backend/internal/chat/usecase"
	"teamdigest-backend/pkg/ai"
	"teamdigest-backend/pkg/graph"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the pipeline as plain data over HTTP. No business
// logic lives here; everything is delegated to the usecase.
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

// POST /api/conversations
// RegisterConversation starts tracking a conversation
func (h *ChatHandler) RegisterConversation(c *gin.Context) {
	var req dto.RegisterConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv := &chatdomain.MonitoredConversation{
		ID:          req.ID,
		DisplayName: req.DisplayName,
		ChatType:    req.ChatType,
	}
	if err := h.chatUsecase.RegisterConversation(conv); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

// DELETE /api/conversations/:id
// IgnoreConversation stops tracking a conversation
func (h *ChatHandler) IgnoreConversation(c *gin.Context) {
	if err := h.chatUsecase.IgnoreConversation(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ignored"})
}

// GET /api/conversations
// ListConversations returns all tracked conversations
func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs, err := h.chatUsecase.ListMonitored()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConversationsResponse{Conversations: convs})
}

// GET /api/conversations/discover?since_hours=168&limit=20
// DiscoverConversations lists remote conversations with recent activity
func (h *ChatHandler) DiscoverConversations(c *gin.Context) {
	sinceHours, err := strconv.Atoi(c.DefaultQuery("since_hours", "168"))
	if err != nil || sinceHours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "since_hours must be a positive integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	convs, err := h.chatUsecase.DiscoverConversations(c.Request.Context(), time.Duration(sinceHours)*time.Hour, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DiscoverResponse{Conversations: convs})
}

// POST /api/conversations/:id/summarize
// Summarize runs one sync-and-summarize pass for a date range
func (h *ChatHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chatUsecase.SyncAndSummarize(c.Request.Context(), c.Param("id"), req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/conversations/:id/summary
// LatestSummary returns the most recent stored summary
func (h *ChatHandler) LatestSummary(c *gin.Context) {
	summary, err := h.chatUsecase.LatestSummary(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary yet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// respondError maps the pipeline's error taxonomy onto HTTP statuses.
// Transient failures have already exhausted their retries by the time they
// arrive here, so they are reported without lower-level detail.
func respondError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		return
	}
	if errors.Is(err, usecase.ErrNothingToSummarize) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nothing to summarize", "detail": err.Error()})
		return
	}
	var remoteErr *graph.RemoteAPIError
	if errors.As(err, &remoteErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "remote API failed", "attempts": remoteErr.Attempts})
		return
	}
	var providerErr *ai.ProviderError
	if errors.As(err, &providerErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "summarization failed", "provider": providerErr.Provider, "attempts": providerErr.Attempts})
		return
	}
	var cacheErr *repository.CacheError
	if errors.As(err, &cacheErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache failure"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

package api

import (
	"net/http"

	chatDelivery "teamdigest-backend/internal/chat/delivery"
	chatUsecase "teamdigest-backend/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the chat digest endpoints onto the engine.
func SetupRoutes(r *gin.Engine, chatUc chatUsecase.ChatUsecase) {
	chatHandler := chatDelivery.NewChatHandler(chatUc)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		conversations := api.Group("/conversations")
		{
			conversations.GET("", chatHandler.ListConversations)
			conversations.POST("", chatHandler.RegisterConversation)
			conversations.GET("/discover", chatHandler.DiscoverConversations)
			conversations.DELETE("/:id", chatHandler.IgnoreConversation)
			conversations.POST("/:id/summarize", chatHandler.Summarize)
			conversations.GET("/:id/summary", chatHandler.LatestSummary)
		}
	}
}

package main

import (
	"os"

	api "teamdigest-backend/cmd/api"
	chatdomain "teamdigest-backend/internal/chat/domain"
	chatRepo "teamdigest-backend/internal/chat/repository"
	chatUsecase "teamdigest-backend/internal/chat/usecase"
	"teamdigest-backend/pkg/ai"
	"teamdigest-backend/pkg/config"
	"teamdigest-backend/pkg/database"
	"teamdigest-backend/pkg/graph"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	// Initialize database
	db, err := database.NewSQLiteConnection(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open cache database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&chatdomain.MonitoredConversation{}, &chatdomain.CachedMessage{}, &chatdomain.Summary{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate cache database")
	}

	// Initialize repositories (dependency injection)
	conversationRepo := chatRepo.NewConversationRepository(db)
	messageRepo := chatRepo.NewMessageRepository(db)
	summaryRepo := chatRepo.NewSummaryRepository(db)

	// Select the conversation source: live Graph client, or the fixture
	// for environments without credentials. The pipeline itself never
	// branches on this.
	var source graph.ConversationSource
	if cfg.UseFixture {
		logger.Info().Msg("using fixture conversation source")
		source = graph.NewFixtureClient()
	} else {
		tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GraphAccessToken})
		source = graph.NewClient(cfg.GraphBaseURL, tokens, logger)
	}

	// Select the model backend once at startup.
	summarizer, err := ai.NewSummarizerService(cfg.AIConfig(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create summarizer")
	}
	logger.Info().Str("provider", summarizer.Name()).Msg("summarizer ready")

	// Initialize use cases (dependency injection)
	chatUc := chatUsecase.NewChatUsecase(source, conversationRepo, messageRepo, summaryRepo, summarizer, logger)

	// Setup routes and start
	r := gin.Default()
	api.SetupRoutes(r, chatUc)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

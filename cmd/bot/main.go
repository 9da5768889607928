package main

import (
	"github.com/varlabz/ask-telegram-bot/internal/agent"
	"github.com/varlabz/ask-telegram-bot/internal/bot"
	"github.com/varlabz/ask-telegram-bot/internal/storage"
	"github.com/varlabz/ask-telegram-bot/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize activation storage
	var store storage.Storage
	switch {
	case cfg.State.UseInMemory:
		logger.Info("Using in-memory state storage")
		store = storage.NewMemoryStorage()
	case cfg.State.UseDatabase:
		logger.Info("Using PostgreSQL state storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.State.Database.Host,
			Port:     cfg.State.Database.Port,
			User:     cfg.State.Database.User,
			Password: cfg.State.Database.Password,
			DBName:   cfg.State.Database.DBName,
			SSLMode:  cfg.State.Database.SSLMode,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	default:
		logger.Info("Using file state storage", zap.String("path", cfg.State.File))
		store = storage.NewFileStorage(cfg.State.File, logger)
	}
	defer store.Close()

	// Each activation gets its own agent session
	factory := func() agent.Agent {
		return agent.NewOpenAIAgent(cfg.OpenAI.APIKey, agent.Options{
			Model:        cfg.OpenAI.Model,
			MaxTokens:    cfg.OpenAI.MaxTokens,
			Temperature:  cfg.OpenAI.Temperature,
			SystemPrompt: cfg.Agent.SystemPrompt,
			ShowStats:    cfg.Agent.ShowStats,
		}, logger)
	}

	// Optional reply styler, a separate agent session
	var styleAgent agent.Agent
	if cfg.Agent.StyleReplies {
		styleAgent = agent.NewOpenAIAgent(cfg.OpenAI.APIKey, agent.Options{
			Model:        cfg.OpenAI.Model,
			MaxTokens:    cfg.OpenAI.MaxTokens,
			Temperature:  cfg.OpenAI.Temperature,
			SystemPrompt: agent.StylerPrompt,
		}, logger)
	}
	styler := agent.NewStyler(styleAgent, logger)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, store, factory, styler, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	b.Start()
}

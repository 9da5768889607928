package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	State    StateConfig    `mapstructure:"state"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Agent    AgentConfig    `mapstructure:"agent"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

// StateConfig selects where the activation record is persisted. The
// default is a JSON file in the working directory; a database can be
// used instead when several instances share state.
type StateConfig struct {
	File        string         `mapstructure:"file"`
	UseDatabase bool           `mapstructure:"use_database"`
	UseInMemory bool           `mapstructure:"use_in_memory"`
	Database    DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type AgentConfig struct {
	SystemPrompt string `mapstructure:"system_prompt"`
	ShowStats    bool   `mapstructure:"show_stats"`
	StyleReplies bool   `mapstructure:"style_replies"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("state.file", ".bot-config.json")
	v.SetDefault("state.use_database", false)
	v.SetDefault("state.use_in_memory", false)
	v.SetDefault("state.database.port", 5432)
	v.SetDefault("state.database.host", "localhost")
	v.SetDefault("state.database.user", "postgres")
	v.SetDefault("state.database.sslmode", "disable")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 1024)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("agent.show_stats", true)
	v.SetDefault("agent.style_replies", true)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file if present; env vars alone are enough
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		config.State.Database = dbConfig
		config.State.UseDatabase = true
	}

	// Get other environment variables
	if token := v.GetString("TELEGRAM_TOKEN"); token != "" {
		config.Telegram.Token = token
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if strings.TrimSpace(config.Telegram.Token) == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	return &config, nil
}

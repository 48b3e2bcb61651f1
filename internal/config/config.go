package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Database DatabaseConfig `json:"database" mapstructure:"database"`
	Chat     ChatConfig     `json:"chat" mapstructure:"chat"`
	AI       AIConfig       `json:"ai" mapstructure:"ai"`
}

type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

type DatabaseConfig struct {
	Host            string        `json:"host" mapstructure:"host"`
	Port            int           `json:"port" mapstructure:"port"`
	User            string        `json:"user" mapstructure:"user"`
	Password        string        `json:"password" mapstructure:"password"`
	Database        string        `json:"database" mapstructure:"database"`
	SSLMode         string        `json:"sslmode" mapstructure:"sslmode"`
	MaxOpenConns    int           `json:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// ChatConfig controls the chat session store. Storage selects the
// persistence adapter; the delays are UI affordances and should be zero
// in tests.
type ChatConfig struct {
	Storage            string        `json:"storage" mapstructure:"storage"` // "local" or "postgres"
	DataDir            string        `json:"data_dir" mapstructure:"data_dir"`
	TypingDelayMin     time.Duration `json:"typing_delay_min" mapstructure:"typing_delay_min"`
	TypingDelayMax     time.Duration `json:"typing_delay_max" mapstructure:"typing_delay_max"`
	SessionSwitchDelay time.Duration `json:"session_switch_delay" mapstructure:"session_switch_delay"`
}

// AIConfig configures the optional live assistant backend.
type AIConfig struct {
	APIKey string `json:"api_key" mapstructure:"api_key"`
	Model  string `json:"model" mapstructure:"model"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".gabai"))
	}

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "gabai")
	viper.SetDefault("database.database", "gabai")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("chat.storage", "local")
	viper.SetDefault("chat.data_dir", "./data")
	viper.SetDefault("chat.typing_delay_min", time.Second)
	viper.SetDefault("chat.typing_delay_max", 2*time.Second)
	viper.SetDefault("chat.session_switch_delay", 150*time.Millisecond)
	viper.SetDefault("ai.model", "gpt-3.5-turbo")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file: run on defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func loadEnvOverrides(cfg *Config) {
	if port := os.Getenv("GABAI_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("GABAI_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if storage := os.Getenv("GABAI_CHAT_STORAGE"); storage != "" {
		cfg.Chat.Storage = storage
	}
	if dir := os.Getenv("GABAI_DATA_DIR"); dir != "" {
		cfg.Chat.DataDir = dir
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	// Database overrides
	if dbHost := os.Getenv("POSTGRES_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort := os.Getenv("POSTGRES_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			cfg.Database.Port = port
		}
	}
	if dbUser := os.Getenv("POSTGRES_USER"); dbUser != "" {
		cfg.Database.User = dbUser
	}
	if dbPass := os.Getenv("POSTGRES_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if dbName := os.Getenv("POSTGRES_DB"); dbName != "" {
		cfg.Database.Database = dbName
	}
}

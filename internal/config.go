package internal

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

type Config struct {
	HTTPServerPort uint16 `json:"http-server-port"`
	DBPath         string `json:"db-path"`
	ReadTimeout    int64  `json:"read-timeout"`
	WriteTimeout   int64  `json:"write-timeout"`
	AllowedOrigin  string `json:"allowed-origin"`
	LogLevel       string `json:"log-level"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPServerPort: 3000,
		DBPath:         "chat.db",
		ReadTimeout:    15,
		WriteTimeout:   15,
		AllowedOrigin:  "*",
		LogLevel:       "info",
	}
}

// LoadConfig reads a JSON config file. Fields left out of the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0755)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err = json.Unmarshal(payload, config); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

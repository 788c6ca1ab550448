package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alanrezendeee/retechfin-rag/internal/logging"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory or the project root. Missing files are not an error.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				return
			}
		}
		_ = godotenv.Load(envFile)
	})
}

// NewLogger builds the application logger from the loaded configuration.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}

// ConfigureLogrus applies the configured level and format to the global
// logrus instance so early log lines respect them too.
func ConfigureLogrus(config *Config) {
	level, err := logrus.ParseLevel(config.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if config.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alanrezendeee/retechfin-rag/cmd/ask"
	"github.com/alanrezendeee/retechfin-rag/cmd/root"
	"github.com/alanrezendeee/retechfin-rag/cmd/serve"
)

func init() {
	// Load environment variables before any logging happens, then set the
	// global log level so early log lines respect it.
	loadEnvSilently()
	configureLogLevel()

	root.Init()
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(ask.Cmd)
}

// loadEnvSilently loads a .env file without logging anything.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevel sets the global logrus level from LOG_LEVEL. The full
// configuration is loaded later per command; this only covers startup lines.
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

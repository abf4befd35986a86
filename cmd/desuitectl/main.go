package main

import (
	"os"

	"github.com/desuite/desuite-web/backend/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

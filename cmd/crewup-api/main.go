package main

import (
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.S().Fatalw("command failed", "error", err)
	}
}

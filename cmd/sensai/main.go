package main

import (
	"os"

	"github.com/wonny/sensai/cmd/sensai/commands"
)

// main is the entry point for the sensai CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/sensai [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

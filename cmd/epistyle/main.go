package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasmrdt/epitech-styling-code/internal/cli"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, cli.ErrViolations) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

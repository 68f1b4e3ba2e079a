package main

import (
	"os"

	"github.com/estrack/estrack/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

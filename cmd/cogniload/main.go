package main

import (
	"os"

	"github.com/Iron-Ham/cogniload/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/bianoble/whisk/cmd/whisk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

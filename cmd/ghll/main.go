package main

import (
	"os"

	"github.com/msto63/ghll/cmd/ghll/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

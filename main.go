package main

import (
	"os"

	"github.com/listenly/listenly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

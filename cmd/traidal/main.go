package main

import (
	"os"

	"github.com/rustyeddy/traidal/cmd/traidal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

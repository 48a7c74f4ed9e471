package main

import (
	"os"

	"github.com/cristianoliveira/toastbox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"luminol/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "luminol: %v\n", err)
		os.Exit(1)
	}
}

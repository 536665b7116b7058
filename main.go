package main

import (
	"fmt"
	"os"

	"github.com/abhisek/solvewise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "solvewise:", err)
		os.Exit(1)
	}
}

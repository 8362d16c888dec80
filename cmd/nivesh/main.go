package main

import (
	"fmt"
	"os"

	"github.com/jsm1306/NiveshBuddy-Assignment/cmd/nivesh/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

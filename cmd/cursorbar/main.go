package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorbar/cursorbar/internal/config"
)

func main() {
	if os.Getenv("CURSORBAR_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.Path())
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:   "cursorbar",
		Short: "cursorbar shows your Cursor subscription usage in a terminal status bar.",
		Run: func(_ *cobra.Command, _ []string) {
			runBar(cfg)
		},
	}

	root.AddCommand(newStatusCommand(cfg))
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

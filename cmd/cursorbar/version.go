package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cursorbar/cursorbar/internal/appupdate"
	"github.com/cursorbar/cursorbar/internal/version"
)

func newVersionCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the cursorbar version.",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("cursorbar " + version.String())
			if !check {
				return
			}

			result, err := appupdate.Check(context.Background(), appupdate.Options{
				CurrentVersion: version.Version,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "update check failed: %v\n", err)
				return
			}
			switch {
			case result.CurrentVersion == "":
				fmt.Println("development build, skipping update check")
			case result.UpdateAvailable:
				fmt.Printf("update available: %s → %s\n", result.CurrentVersion, result.LatestVersion)
			default:
				fmt.Println("up to date")
			}
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}

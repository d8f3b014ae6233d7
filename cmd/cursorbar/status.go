package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cursorbar/cursorbar/internal/config"
	"github.com/cursorbar/cursorbar/internal/monitor"
	"github.com/cursorbar/cursorbar/internal/statestore"
	"github.com/cursorbar/cursorbar/internal/tui"
	"github.com/cursorbar/cursorbar/internal/usage"
)

// newStatusCommand prints the status line once and exits, for embedding in
// tmux or waybar status bars.
func newStatusCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the usage status line once and exit.",
		Run: func(_ *cobra.Command, _ []string) {
			mon := monitor.New(
				usage.NewClient(),
				monitor.DefaultCredentialSource(statestore.CandidatePaths()),
				time.Duration(cfg.RefreshIntervalSeconds)*time.Second,
			)
			snap := mon.Refresh(context.Background())
			fmt.Println(tui.PlainStatus(snap, cfg.ShowPercentage))
		},
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cursorbar/cursorbar/internal/config"
	"github.com/cursorbar/cursorbar/internal/monitor"
	"github.com/cursorbar/cursorbar/internal/statestore"
	"github.com/cursorbar/cursorbar/internal/tui"
	"github.com/cursorbar/cursorbar/internal/usage"
)

// runBar wires the monitor to the inline TUI and blocks until quit.
func runBar(cfg config.Config) {
	paths := statestore.CandidatePaths()
	mon := monitor.New(
		usage.NewClient(),
		monitor.DefaultCredentialSource(paths),
		time.Duration(cfg.RefreshIntervalSeconds)*time.Second,
	)
	if err := mon.WatchStateDB(paths[0]); err != nil {
		log.Printf("[main] state DB watch unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(cfg)
	model.SetOnRefresh(mon.RequestRefresh)
	model.SetOnToggleDisplay(func(showPercentage bool) {
		if err := config.SaveShowPercentage(showPercentage); err != nil {
			log.Printf("[main] persisting display toggle: %v", err)
		}
	})

	program := tea.NewProgram(model)

	mon.OnUpdate(func(snap monitor.Snapshot) {
		program.Send(tui.SnapshotMsg(snap))
	})
	mon.Start(ctx)
	defer mon.Dispose()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("TUI error: %v", err)
	}
}

package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	// Pick up snapshots from other writers while the TUI is open
	if err := store.StartWatch(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live updates unavailable: %v\n", err)
	}
	defer store.StopWatch()

	p := tea.NewProgram(tui.NewModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}

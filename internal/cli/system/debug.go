package system

import (
	"encoding/json"
	"fmt"

	"github.com/butterslam/vibe-1/internal/cli"
)

type DebugCmd struct {
	StorePath    *DebugStorePathCmd    `cmd:"" help:"Show store path."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump habit data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpInbox    *DebugDumpInboxCmd    `cmd:"" help:"Dump inbox notifications as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpHabitCmd struct {
	Name string `arg:"" optional:"" help:"Habit name (default: all habits)."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}

	if cmd.Name == "" {
		return printJSON(store.All())
	}
	habit, ok := store.GetByName(cmd.Name)
	if !ok {
		return fmt.Errorf("habit %q not found", cmd.Name)
	}
	return printJSON(habit)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	return printJSON(settings)
}

type DebugDumpInboxCmd struct{}

func (cmd *DebugDumpInboxCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Allies()
	if err != nil {
		return err
	}
	notifications, err := svc.Inbox()
	if err != nil {
		return err
	}
	return printJSON(notifications)
}

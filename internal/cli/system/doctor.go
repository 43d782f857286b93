package system

import (
	"fmt"
	"time"

	"github.com/butterslam/vibe-1/internal/backup"
	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/storage"
	"github.com/butterslam/vibe-1/internal/storage/postgres"
	"github.com/butterslam/vibe-1/internal/storage/sqlite"
	"github.com/butterslam/vibe-1/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: migrations complete (SQL stores only)
	if storeReachable {
		if pending, err := pendingMigrations(ctx.Store); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else if pending > 0 {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   %d pending migration(s), run 'vibe migrate'\n", pending)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (store not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: habit data validation
	if storeReachable {
		if err := checkHabitData(ctx); err != nil {
			fmt.Printf("❌ Habit data: FAIL\n")
			fmt.Printf("   %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit data: SKIPPED (store not reachable)\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(ctx, storeReachable); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func pendingMigrations(store storage.Provider) (int, error) {
	switch s := store.(type) {
	case *sqlite.Store:
		return s.PendingMigrations()
	case *postgres.Store:
		return s.PendingMigrations()
	default:
		// JSON stores have no migrations
		return 0, nil
	}
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.BackupDir())
	}
	return nil
}

func checkHabitData(ctx *cli.Context) error {
	store, err := ctx.Habits()
	if err != nil {
		return err
	}
	result := validation.CheckHabits(store.All())
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context, storeReachable bool) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock appears wrong: %s", now.Format(time.RFC3339))
	}
	if storeReachable {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return err
		}
		if settings.Timezone != "" && settings.Timezone != "Local" {
			if _, err := time.LoadLocation(settings.Timezone); err != nil {
				return fmt.Errorf("configured timezone %q is invalid: %w", settings.Timezone, err)
			}
		}
	}
	return nil
}

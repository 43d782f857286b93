package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/storage"
	"github.com/butterslam/vibe-1/internal/storage/postgres"
	"github.com/butterslam/vibe-1/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing store before initialization."`
	Source string `help:"Source store path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing store
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absStorePath, err := filepath.Abs(storePath)
			if err == nil {
				storePath = absStorePath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == storePath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", storePath)
			}
		}
		if _, err := os.Stat(storePath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized vibe storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	switch {
	case strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://"):
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	case strings.HasSuffix(sourcePath, ".json"):
		sourceStore = storage.NewJSONStore(sourcePath)
	default:
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits(settings.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.SaveHabit(habit); err != nil {
			return fmt.Errorf("failed to save habit %s: %w", habit.ID, err)
		}
	}
	fmt.Printf("    Migrated %d habits\n", len(habits))

	fmt.Println("  Migrating notifications...")
	notifications, err := sourceStore.GetNotifications(settings.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to get notifications from source: %w", err)
	}
	for _, n := range notifications {
		if err := ctx.Store.SaveNotification(n); err != nil {
			return fmt.Errorf("failed to save notification %s: %w", n.ID, err)
		}
	}
	fmt.Printf("    Migrated %d notifications\n", len(notifications))

	return nil
}

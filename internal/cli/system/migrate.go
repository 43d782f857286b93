package system

import (
	"fmt"

	"github.com/butterslam/vibe-1/internal/cli"
	"github.com/butterslam/vibe-1/internal/storage/postgres"
	"github.com/butterslam/vibe-1/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	defer ctx.Store.Close()

	var count int
	var err error
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		count, err = store.Migrate(func(msg string) { fmt.Println(msg) })
	case *postgres.Store:
		count, err = store.Migrate(func(msg string) { fmt.Println(msg) })
	default:
		return fmt.Errorf("migrate command supports SQLite and PostgreSQL storage only")
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Store is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}

package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"002_add_color.sql": {Data: []byte("ALTER TABLE things ADD COLUMN color TEXT NOT NULL DEFAULT '';")},
		"001_init.sql":      {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
	}
}

func TestReadMigrationFilesSorted(t *testing.T) {
	r := NewRunner(openTestDB(t), testFS(), DialectSQLite)

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("len = %d, want 2", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("first = %d %q, want 1 init", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 || migrations[1].Name != "add_color" {
		t.Errorf("second = %d %q, want 2 add_color", migrations[1].Version, migrations[1].Name)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"no underscore", "001.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"version zero", "000_init.sql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{tt.file: {Data: []byte("SELECT 1;")}}
			r := NewRunner(openTestDB(t), fsys, DialectSQLite)
			if _, err := r.ReadMigrationFiles(); err == nil {
				t.Errorf("expected %s to be rejected", tt.file)
			}
		})
	}
}

func TestReadMigrationFilesDuplicateVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 1;")},
	}
	r := NewRunner(openTestDB(t), fsys, DialectSQLite)
	if _, err := r.ReadMigrationFiles(); err == nil {
		t.Error("expected duplicate version to be rejected")
	}
}

func TestReadMigrationFilesIgnoresNonSQL(t *testing.T) {
	fsys := testFS()
	fsys["README.md"] = &fstest.MapFile{Data: []byte("notes")}
	r := NewRunner(openTestDB(t), fsys, DialectSQLite)

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles: %v", err)
	}
	if len(migrations) != 2 {
		t.Errorf("len = %d, want 2", len(migrations))
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(), DialectSQLite)

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := r.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// The migrated schema is usable
	if _, err := db.Exec("INSERT INTO things (id, color) VALUES ('t1', 'blue')"); err != nil {
		t.Errorf("migrated schema unusable: %v", err)
	}

	// A second run is a no-op
	applied, err = r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
	if applied != 0 {
		t.Errorf("second run applied = %d, want 0", applied)
	}
}

func TestApplyMigrationsPartialFromVersion(t *testing.T) {
	db := openTestDB(t)

	first := fstest.MapFS{"001_init.sql": testFS()["001_init.sql"]}
	if _, err := NewRunner(db, first, DialectSQLite).ApplyMigrations(nil); err != nil {
		t.Fatalf("apply v1: %v", err)
	}

	r := NewRunner(db, testFS(), DialectSQLite)
	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("apply remaining: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want only the pending migration", applied)
	}
}

func TestPending(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(), DialectSQLite)

	pending, err := r.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if pending != 2 {
		t.Errorf("pending = %d, want 2 on a fresh database", pending)
	}

	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	pending, err = r.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if pending != 0 {
		t.Errorf("pending = %d, want 0 after applying", pending)
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	r := NewRunner(db, testFS(), DialectSQLite)

	// Fresh database is valid, migrations merely pending
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion on fresh database: %v", err)
	}

	if _, err := r.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations: %v", err)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion after apply: %v", err)
	}

	// A schema newer than the application is refused
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := r.ValidateVersion(); err == nil {
		t.Error("expected newer schema to be refused")
	}
}

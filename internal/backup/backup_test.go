package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/butterslam/vibe-1/internal/constants"
)

// Tests use a .json store so backups are plain file copies.
func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "vibe.json")
	if err := os.WriteFile(storePath, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatalf("write store: %v", err)
	}
	return NewManager(storePath), storePath
}

func TestCreate(t *testing.T) {
	m, _ := newTestManager(t)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %s", data)
	}
	if filepath.Dir(path) != m.BackupDir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(path), m.BackupDir())
	}
	if filepath.Ext(path) != ".json" {
		t.Errorf("backup suffix = %s, want the store's suffix", filepath.Ext(path))
	}
}

func TestCreateMissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("expected Create to fail without a store file")
	}
}

func TestCreateUniquePaths(t *testing.T) {
	m, _ := newTestManager(t)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := m.Create()
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}
}

func TestList(t *testing.T) {
	m, _ := newTestManager(t)

	if backups, err := m.List(); err != nil || len(backups) != 0 {
		t.Fatalf("List before any backup = %v, %v", backups, err)
	}

	// Stamped files written directly so ordering is deterministic
	writeBackup(t, m, "20260822-0900")
	writeBackup(t, m, "20260824-0900")
	writeBackup(t, m, "20260823-0900")

	// Files that are not backups are ignored
	if err := os.WriteFile(filepath.Join(m.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("len = %d, want 3", len(backups))
	}
	if !backups[0].Timestamp.After(backups[1].Timestamp) || !backups[1].Timestamp.After(backups[2].Timestamp) {
		t.Errorf("backups not newest first: %v, %v, %v",
			backups[0].Timestamp, backups[1].Timestamp, backups[2].Timestamp)
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		stamp string
		want  time.Time
		ok    bool
	}{
		{"20260824-0930", time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC), true},
		{"20260824-093015", time.Date(2026, 8, 24, 9, 30, 15, 0, time.UTC), true},
		{"20260824-093015-1", time.Date(2026, 8, 24, 9, 30, 15, 0, time.UTC), true},
		{"20260824-093015-42", time.Date(2026, 8, 24, 9, 30, 15, 0, time.UTC), true},
		{"garbage", time.Time{}, false},
		{"2026-08-24", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := parseStamp(tt.stamp)
		if ok != tt.ok {
			t.Errorf("parseStamp(%q) ok = %v, want %v", tt.stamp, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("parseStamp(%q) = %v, want %v", tt.stamp, got, tt.want)
		}
	}
}

func TestPrune(t *testing.T) {
	m, _ := newTestManager(t)

	total := constants.MaxBackups + 3
	base := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		writeBackup(t, m, base.Add(time.Duration(i)*time.Hour).Format("20060102-1504"))
	}

	if err := m.Prune(); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("len = %d, want %d", len(backups), constants.MaxBackups)
	}

	// The newest copies survive
	newest := base.Add(time.Duration(total-1) * time.Hour)
	if !backups[0].Timestamp.Equal(newest) {
		t.Errorf("newest survivor = %v, want %v", backups[0].Timestamp, newest)
	}
}

func TestRestore(t *testing.T) {
	m, storePath := newTestManager(t)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := os.WriteFile(storePath, []byte(`{"version":1,"mangled":true}`), 0600); err != nil {
		t.Fatalf("overwrite store: %v", err)
	}

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("restored content = %s", data)
	}

	// Restore took a safety backup of the mangled store first
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, b := range backups {
		content, err := os.ReadFile(b.Path)
		if err != nil {
			t.Fatalf("read %s: %v", b.Path, err)
		}
		if string(content) == `{"version":1,"mangled":true}` {
			found = true
		}
	}
	if !found {
		t.Error("no safety backup of the pre-restore store")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	m, _ := newTestManager(t)
	if err := m.Restore(filepath.Join(m.BackupDir(), "nope.json")); err == nil {
		t.Fatal("expected Restore of a missing backup to fail")
	}
}

func writeBackup(t *testing.T, m *Manager, stamp string) {
	t.Helper()
	if err := os.MkdirAll(m.BackupDir(), 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	name := fmt.Sprintf("%s%s.json", constants.BackupFilePrefix, stamp)
	if err := os.WriteFile(filepath.Join(m.BackupDir(), name), []byte("{}"), 0600); err != nil {
		t.Fatalf("write backup %s: %v", name, err)
	}
}

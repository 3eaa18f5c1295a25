package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaves(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("pong", "best", "10"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("pong", "best", "12"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	if err := store.Set("pong", "level", "3"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("snake", "best", "99"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, ok, err := store.Get("pong", "best")
	if err != nil || !ok || value != "12" {
		t.Errorf("Get(best) = %q, %v, %v, expected 12, true, nil", value, ok, err)
	}

	if _, ok, err := store.Get("pong", "missing"); ok || err != nil {
		t.Errorf("Get(missing) ok = %v, err = %v, expected false, nil", ok, err)
	}

	keys, err := store.Keys("pong")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if diff := cmp.Diff([]string{"best", "level"}, keys); diff != "" {
		t.Errorf("Keys() mismatch (-expected +got):\n%s", diff)
	}

	if err := store.Delete("pong", "best"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := store.Delete("pong", "best"); err != nil {
		t.Errorf("Delete() of a missing key failed: %v", err)
	}
	if _, ok, _ := store.Get("pong", "best"); ok {
		t.Error("Get() found a deleted key")
	}
	if value, _, _ := store.Get("snake", "best"); value != "99" {
		t.Errorf("other game's value = %q, expected 99", value)
	}

	keys, err = store.Keys("empty")
	if err != nil || len(keys) != 0 {
		t.Errorf("Keys(empty) = %v, %v, expected no keys", keys, err)
	}
}

func TestFaults(t *testing.T) {
	store := openTestStore(t)

	for _, f := range []struct{ game, msg string }{
		{"pong", "first"},
		{"snake", "second"},
		{"pong", "third"},
	} {
		if err := store.RecordFault(f.game, f.msg); err != nil {
			t.Fatalf("RecordFault() failed: %v", err)
		}
	}

	faults, err := store.RecentFaults("pong", 10)
	if err != nil {
		t.Fatalf("RecentFaults() failed: %v", err)
	}
	var got []string
	for _, f := range faults {
		got = append(got, f.Message)
		if f.GameID != "pong" {
			t.Errorf("fault game = %q, expected pong", f.GameID)
		}
		if f.CreatedAt.IsZero() {
			t.Error("fault CreatedAt not set")
		}
	}
	if diff := cmp.Diff([]string{"third", "first"}, got); diff != "" {
		t.Errorf("RecentFaults(pong) mismatch (-expected +got):\n%s", diff)
	}

	all, err := store.RecentFaults("", 2)
	if err != nil {
		t.Fatalf("RecentFaults() failed: %v", err)
	}
	if len(all) != 2 || all[0].Message != "third" || all[1].Message != "second" {
		t.Errorf("RecentFaults(all, 2) = %+v, expected third and second", all)
	}
}

package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesLocalStorageTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	db, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO local_storage (key, value, updated_at) VALUES ('k', 'v', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("insert into local_storage: %v", err)
	}

	var v string
	if err := db.QueryRow(`SELECT value FROM local_storage WHERE key = 'k'`).Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "v" {
		t.Fatalf("got %q, want v", v)
	}
}

func TestInitDB_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")

	first, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if _, err := first.Exec(`INSERT INTO local_storage (key, value, updated_at) VALUES ('currentUser', '{}', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = first.Close()

	second, err := InitDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	var n int
	if err := second.QueryRow(`SELECT COUNT(*) FROM local_storage`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row after reopen, got %d", n)
	}
}

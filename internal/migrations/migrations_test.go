package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
)

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for range 2 {
		if err := Apply(ctx, db); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
	}

	got, err := Applied(ctx, db)
	if err != nil {
		t.Fatalf("Applied() error = %v", err)
	}
	want := []string{"0001_credentials.sql", "0002_attempts.sql"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Applied() mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO credentials (id, username, password) VALUES (2, 'a', 'b')"); err == nil {
		t.Error("second credentials row accepted, want CHECK failure")
	}
}

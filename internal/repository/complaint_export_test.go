package repository

import (
	"context"
	"database/sql"
	"testing"
)

// seedComplaintAt inserts a complaint with an explicit creation time so
// date filters and ordering can be asserted deterministically.
func seedComplaintAt(t *testing.T, db *sql.DB, userID, categoryID uint64, subject, createdAt string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO complaints (user_id, subject, description, photo_url, location, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, subject, "desc", "uploads/p.jpg", "downtown", categoryID, createdAt, createdAt)
	if err != nil {
		t.Fatalf("seed complaint: %v", err)
	}
}

func exportSubjects(rows [][]string) []string {
	// subject is the third column of the complaints table
	out := make([]string, len(rows))
	for i, rec := range rows {
		out[i] = rec[2]
	}
	return out
}

func TestExport_All(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplaintRepo(db)
	uid := seedUser(t, db, "amal", "amal@example.com")
	cid := seedCategory(t, db, "roads")
	seedComplaintAt(t, db, uid, cid, "oldest", "2024-03-01 09:00:00")
	seedComplaintAt(t, db, uid, cid, "newest", "2024-03-03 09:00:00")
	seedComplaintAt(t, db, uid, cid, "middle", "2024-03-02 09:00:00")

	cols, rows, err := repo.Export(context.Background(), ExportFilter{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(cols) == 0 {
		t.Fatal("Export() returned no columns for a non-empty result")
	}
	if cols[0] != "id" {
		t.Errorf("Export() first column = %q, want %q", cols[0], "id")
	}
	got := exportSubjects(rows)
	want := []string{"newest", "middle", "oldest"}
	if len(got) != len(want) {
		t.Fatalf("Export() returned %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Export() row %d subject = %q, want %q (newest first)", i, got[i], want[i])
		}
	}
}

func TestExport_Filtered(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplaintRepo(db)
	uid := seedUser(t, db, "amal", "amal@example.com")
	roads := seedCategory(t, db, "roads")
	water := seedCategory(t, db, "water")
	seedComplaintAt(t, db, uid, roads, "too early", "2024-02-28 09:00:00")
	seedComplaintAt(t, db, uid, roads, "in range", "2024-03-02 09:00:00")
	seedComplaintAt(t, db, uid, roads, "too late", "2024-03-10 09:00:00")
	seedComplaintAt(t, db, uid, water, "wrong category", "2024-03-02 12:00:00")

	from, to := "2024-03-01", "2024-03-05"
	_, rows, err := repo.Export(context.Background(), ExportFilter{
		CategoryID: &roads,
		DateFrom:   &from,
		DateTo:     &to,
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	got := exportSubjects(rows)
	if len(got) != 1 || got[0] != "in range" {
		t.Errorf("Export() subjects = %v, want only %q", got, "in range")
	}
}

func TestExport_Empty(t *testing.T) {
	repo := NewComplaintRepo(newTestDB(t))

	cols, rows, err := repo.Export(context.Background(), ExportFilter{})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(cols) != 0 {
		t.Errorf("Export() of an empty table returned columns %v, want none", cols)
	}
	if len(rows) != 0 {
		t.Errorf("Export() of an empty table returned %d rows", len(rows))
	}
}

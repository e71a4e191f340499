package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRecord(t *testing.T) {
	a := NewRecord()
	b := NewRecord()

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("NewRecord IDs should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("NewRecord should set CreatedAt")
	}
	if a.CreatedAt.Location() != time.UTC {
		t.Error("CreatedAt should be UTC")
	}
}

func TestFileStoreSaveList(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "history"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		rec := &Record{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Width:     100 * (i + 1),
			Height:    50,
			Sites:     10,
			Workers:   4,
			Runs:      3,
			SeqWall:   40 * time.Millisecond,
			ParWall:   10 * time.Millisecond,
			Speedup:   4,
			Identical: true,
		}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if rec.ID == "" {
			t.Fatal("Save should assign an ID")
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("List returned %d records, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("records not newest-first at %d", i)
		}
	}
	if all[0].Width != 500 {
		t.Errorf("newest record width = %d, want 500", all[0].Width)
	}
	if all[0].SeqWall != 40*time.Millisecond || !all[0].Identical {
		t.Errorf("record fields not round-tripped: %+v", all[0])
	}

	two, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(two) != 2 || two[0].ID != all[0].ID || two[1].ID != all[1].ID {
		t.Errorf("List(2) = %v, want first two of %v", two, all[:2])
	}
}

func TestFileStoreSkipsJunk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, NewRecord()); err != nil {
		t.Fatal(err)
	}

	recs, err := s.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Errorf("List returned %d records, want 1", len(recs))
	}
	if s.Path() != dir {
		t.Errorf("Path() = %q, want %q", s.Path(), dir)
	}
}

func TestFileStoreDefaultDir(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	s, err := NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dataHome, "diagvor", "history")
	if s.Path() != want {
		t.Errorf("Path() = %q, want %q", s.Path(), want)
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, NewRecord()); err != context.Canceled {
		t.Errorf("Save = %v, want context.Canceled", err)
	}
	if _, err := s.List(ctx, 1); err != context.Canceled {
		t.Errorf("List = %v, want context.Canceled", err)
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	rec := &Record{}
	if err := s.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("NullStore.Save should still assign an ID")
	}
	recs, err := s.List(ctx, 5)
	if err != nil || len(recs) != 0 {
		t.Errorf("NullStore.List = %v, %v; want empty", recs, err)
	}
}

func TestNewMongoStoreInvalidURI(t *testing.T) {
	_, err := NewMongoStore(context.Background(), "http://localhost:27017", "")
	if err == nil {
		t.Fatal("NewMongoStore should reject a non-mongodb URI")
	}
}

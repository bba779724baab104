package score

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHighScoreEmptyStore(t *testing.T) {
	s := openTestStore(t)
	hi, err := s.HighScore()
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if hi != 0 {
		t.Fatalf("expected 0 for empty store, got %d", hi)
	}
}

func TestRecordAndTopOrdering(t *testing.T) {
	s := openTestStore(t)
	for _, e := range []Entry{
		{Score: 120, Wave: 2},
		{Score: 400, Wave: 5},
		{Score: 90, Wave: 1},
		{Score: 250, Wave: 3},
	} {
		if err := s.Record(e); err != nil {
			t.Fatalf("record %+v: %v", e, err)
		}
	}

	top, err := s.Top(3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	want := []int{400, 250, 120}
	for i, e := range top {
		if e.Score != want[i] {
			t.Fatalf("rank %d: expected %d, got %d", i, want[i], e.Score)
		}
		if e.When.IsZero() {
			t.Fatalf("rank %d: timestamp not filled", i)
		}
	}

	hi, err := s.HighScore()
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if hi != 400 {
		t.Fatalf("expected high score 400, got %d", hi)
	}
}

func TestRecordsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Record(Entry{Score: 640, Wave: 7}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() { _ = s.Close() }()

	hi, err := s.HighScore()
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if hi != 640 {
		t.Fatalf("expected high score 640 after reopen, got %d", hi)
	}
}

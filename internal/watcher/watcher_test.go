package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) onChange(path string) {
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func startWatcher(t *testing.T, paths []string, rec *recorder) *Watcher {
	t.Helper()
	w := NewWatcher(paths, rec.onChange, WithDebounce(100*time.Millisecond), WithLogger(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.csv")
	if err := writeFile(corpus, "question,answer\n"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	startWatcher(t, []string{corpus}, rec)

	for i := 0; i < 3; i++ {
		if err := writeFile(corpus, "question,answer\nhello,hi\n"); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(500 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected one debounced callback, got %v", got)
	}
	if got[0] != corpus {
		t.Errorf("callback path = %s, want %s", got[0], corpus)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.csv")

	rec := &recorder{}
	startWatcher(t, []string{corpus}, rec)

	if err := writeFile(filepath.Join(dir, "notes.csv"), "x"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("unexpected callbacks: %v", got)
	}
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.csv")
	if err := writeFile(corpus, "question,answer\n"); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	startWatcher(t, []string{corpus}, rec)

	tmp := filepath.Join(dir, ".corpus-1.tmp")
	if err := writeFile(tmp, "question,answer\nbye,later\n"); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, corpus); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)

	if got := rec.snapshot(); len(got) < 1 {
		t.Errorf("expected a callback after rename, got %v", got)
	}
}

func TestWatcher_StopDropsPending(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus.csv")

	rec := &recorder{}
	w := NewWatcher([]string{corpus}, rec.onChange, WithDebounce(300*time.Millisecond))
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(corpus, "question,answer\n"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	w.Stop()
	w.Stop()
	time.Sleep(400 * time.Millisecond)

	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("callback fired after Stop: %v", got)
	}
}

func TestWatcher_Start_createsMissingParentDirectory(t *testing.T) {
	base := t.TempDir()
	corpus := filepath.Join(base, "data", "nested", "corpus.xlsx")

	rec := &recorder{}
	startWatcher(t, []string{corpus}, rec)

	if _, err := os.Stat(filepath.Dir(corpus)); err != nil {
		t.Errorf("parent directory should exist after Start: %v", err)
	}
}

func TestWatcher_Files(t *testing.T) {
	dir := t.TempDir()
	b := filepath.Join(dir, "b.csv")
	a := filepath.Join(dir, "a.xlsx")

	w := NewWatcher([]string{b, "", a, b}, nil)
	got := w.Files()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Files() = %v, want [%s %s]", got, a, b)
	}
	if len(w.dirs) != 1 {
		t.Errorf("shared parent should be watched once, got %v", w.dirs)
	}
}

func TestNewWatcher_NilLogger(t *testing.T) {
	w := NewWatcher([]string{filepath.Join(t.TempDir(), "corpus.csv")}, nil, WithLogger(nil))
	if w.logger == nil {
		t.Fatal("expected a no-op logger")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

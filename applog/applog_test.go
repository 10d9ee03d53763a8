package applog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestAppendCreatesDirAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	l := New(dir)

	if got, want := l.Path(), filepath.Join(dir, FileName); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}

	if err := l.Append([]string{"first", "second"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := l.Append([]string{"third"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got := string(data); got != "first\nsecond\nthird\n" {
		t.Fatalf("log contents = %q", got)
	}
}

func TestAppendEmpty(t *testing.T) {
	l := New(t.TempDir())
	if err := l.Append(nil); err != nil {
		t.Fatalf("Append(nil) failed: %v", err)
	}
	if _, err := os.Stat(l.Path()); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestAppendConcurrent(t *testing.T) {
	l := New(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append([]string{"line a", "line b"})
		}()
	}
	wg.Wait()

	data, _ := os.ReadFile(l.Path())
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for i := 0; i < len(lines); i += 2 {
		if lines[i] != "line a" || lines[i+1] != "line b" {
			t.Fatalf("batches interleaved at line %d: %q %q", i, lines[i], lines[i+1])
		}
	}
}

func TestAppendUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// a regular file where the directory should be
	if err := New(file).Append([]string{"x"}); err == nil {
		t.Fatal("Append under a regular file should fail")
	}
}

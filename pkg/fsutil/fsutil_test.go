package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/linguo/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "test.txt")
		content := []byte("hello\nworld\n")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}

		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if info.Mode != 0644 {
			t.Errorf("Mode = %o, want %o", info.Mode, 0644)
		}

		if info.Lines != 2 {
			t.Errorf("Lines = %d, want 2", info.Lines)
		}

		if info.Truncated {
			t.Error("Truncated should be false")
		}
	})

	t.Run("keeps only the head but measures everything", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "big.txt")
		content := strings.Repeat("0123456789\n", 10000)

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path, 25)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != content[:25] {
			t.Errorf("content = %q, want %q", got, content[:25])
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if info.Lines != 10000 {
			t.Errorf("Lines = %d, want 10000", info.Lines)
		}

		if !info.Truncated {
			t.Error("Truncated should be true")
		}
	})

	t.Run("counts a final line without newline", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			content string
			lines   int
		}{
			{"", 0},
			{"a", 1},
			{"a\n", 1},
			{"a\nb", 2},
			{"\n\n", 2},
		}

		for _, tt := range tests {
			path := filepath.Join(t.TempDir(), "f")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("setup: %v", err)
			}

			_, info, err := fsutil.ReadFile(context.Background(), path, 0)
			if err != nil {
				t.Fatalf("ReadFile(%q) error = %v", tt.content, err)
			}

			if info.Lines != tt.lines {
				t.Errorf("Lines(%q) = %d, want %d", tt.content, info.Lines, tt.lines)
			}
		}
	})

	t.Run("empty file yields empty content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, _, err := fsutil.ReadFile(context.Background(), path, 10)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if got == nil || len(got) != 0 {
			t.Errorf("content = %#v, want empty non-nil slice", got)
		}
	})

	t.Run("returns ErrNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), "/nonexistent/path/file.txt", 0)

		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns ErrIsDirectory for directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir(), 0)

		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "anypath", 0)

		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

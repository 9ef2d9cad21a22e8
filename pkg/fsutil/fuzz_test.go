package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/linguo/pkg/fsutil"
)

func FuzzReadFile(f *testing.F) {
	f.Add([]byte(""), 0)
	f.Add([]byte("hello"), 3)
	f.Add([]byte("hello\nworld\n"), 100)
	f.Add([]byte("\x00\x01\x02\x03"), 1)
	f.Add(make([]byte, 70000), 40000)

	f.Fuzz(func(t *testing.T, content []byte, limit int) {
		path := filepath.Join(t.TempDir(), "f")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path, limit)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}

		want := content
		if limit > 0 && len(want) > limit {
			want = want[:limit]
		}
		if !bytes.Equal(got, want) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(want))
		}

		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if info.Truncated != (len(want) < len(content)) {
			t.Errorf("Truncated = %v with %d of %d bytes", info.Truncated, len(want), len(content))
		}

		lines := bytes.Count(content, []byte{'\n'})
		if len(content) > 0 && content[len(content)-1] != '\n' {
			lines++
		}
		if info.Lines != lines {
			t.Errorf("Lines = %d, want %d", info.Lines, lines)
		}

		_ = os.Remove(path)
	})
}

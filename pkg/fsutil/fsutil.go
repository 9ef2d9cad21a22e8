// Package fsutil provides bounded file reads and atomic writes for linguo.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// readChunk is the buffer size used when streaming a file.
const readChunk = 32 * 1024

// FileInfo captures the state of a file at the time it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the full file size in bytes, regardless of how much content
	// was kept.
	Size int64

	// Lines is the number of lines in the whole file. A final line without
	// a trailing newline counts.
	Lines int

	// Truncated reports whether the returned content is shorter than the
	// file.
	Truncated bool
}

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// ReadFile reads the file at path and returns at most limit leading bytes of
// its content along with metadata. The whole file is streamed so that Size
// and Lines describe all of it. A limit of zero or less keeps everything.
func ReadFile(ctx context.Context, path string, limit int) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
	}

	var (
		content []byte
		buf     = make([]byte, readChunk)
		last    byte
	)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			info.Size += int64(n)
			info.Lines += bytes.Count(chunk, []byte{'\n'})
			last = chunk[n-1]

			switch {
			case limit <= 0:
				content = append(content, chunk...)
			case len(content) < limit:
				keep := min(n, limit-len(content))
				content = append(content, chunk[:keep]...)
				info.Truncated = info.Truncated || keep < n
			default:
				info.Truncated = true
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, classify(path, err)
		}
	}

	if info.Size > 0 && last != '\n' {
		info.Lines++
	}
	if content == nil {
		content = []byte{}
	}
	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

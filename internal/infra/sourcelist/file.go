// Package sourcelist provides implementations for loading the seed source
// list, the newline-delimited document of candidate question titles consumed
// by seeding runs. A local file is the primary source; an HTTP fetcher with
// circuit breaker and retry support covers lists hosted remotely.
package sourcelist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"ponder/internal/usecase/seed"
)

// FileSourceList loads candidate titles from a local file.
type FileSourceList struct {
	path string
}

// NewFileSourceList creates a FileSourceList reading from the given path.
func NewFileSourceList(path string) *FileSourceList {
	return &FileSourceList{path: path}
}

// Load reads the file and returns its lines in order. Lines are returned
// verbatim; trimming and blank-line filtering are the seeding pipeline's
// concern. A missing file is reported as seed.ErrSourceListNotFound.
func (f *FileSourceList) Load(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source list %s: %w", f.path, seed.ErrSourceListNotFound)
		}
		return nil, fmt.Errorf("read source list %s: %w", f.path, err)
	}

	return splitLines(string(data)), nil
}

// splitLines splits newline-delimited list content into lines. CRLF line
// endings are accepted so lists authored on Windows load cleanly.
func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}

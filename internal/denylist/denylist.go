// Package denylist checks plaintext passwords against a file of known-bad
// passwords, one per line.
package denylist

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/loginsystem/internal/filex"
)

// ctxCheckInterval is how many lines are scanned between context checks.
const ctxCheckInterval = 4096

// errFound stops the scan at the first match.
var errFound = errors.New("found")

// File is a denylist stored in a text file. The file is re-read on every
// lookup, so edits take effect without restarting.
type File struct {
	path string
}

// NewFile returns a denylist backed by path. An empty path disables it.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the denylist file path.
func (f *File) Path() string { return f.path }

// Contains reports whether password appears verbatim (case-sensitive, no
// trimming beyond a trailing "\r") as a line of the file. Overlong lines
// never match and do not stop the scan.
func (f *File) Contains(ctx context.Context, password string) (bool, error) {
	if f == nil || f.path == "" {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := filex.ReadLines(f.path, func(n int, line string) error {
		if line == password {
			return errFound
		}
		if n%ctxCheckInterval == 0 {
			return ctx.Err()
		}
		return nil
	})

	switch {
	case errors.Is(err, errFound):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

// Package filex holds the scoped file helpers used by the credential store:
// every helper opens, uses and closes its file before returning.
package filex

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// maxLineSize bounds a single line read by ReadLines.
const maxLineSize = 1 << 20

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}
	return nil
}

// AppendLine appends line and a trailing newline to path, creating the file
// (mode 0600) and its parent directory if needed. When the existing file does
// not end with a newline one is written first, so the new line never merges
// with a hand-edited last line.
func AppendLine(path, line string) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	prefix, err := missingNewline(f)
	if err != nil {
		return errors.Wrapf(err, "inspect %s", path)
	}

	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		return errors.Wrapf(err, "append %s", path)
	}

	return errors.Wrapf(f.Sync(), "sync %s", path)
}

func missingNewline(f *os.File) (string, error) {
	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.Size() == 0 {
		return "", nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, fi.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if last[0] == '\n' {
		return "", nil
	}
	return "\n", nil
}

// ReadLines calls fn for every line of path with the trailing "\r" removed.
// Line numbers start at 1. Lines longer than maxLineSize are not passed to fn;
// their numbers are returned in long and reading continues with the next line.
// Reading stops at the first error returned by fn.
func ReadLines(path string, fn func(n int, line string) error) (long []int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 64*1024)

	var buf []byte
	n, tooLong := 0, false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return long, nil
			}
			return long, errors.Wrapf(err, "read %s", path)
		}

		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineSize {
				tooLong, buf = true, buf[:0]
			}
		}
		if isPrefix {
			continue
		}

		n++
		if tooLong {
			long = append(long, n)
		} else if err := fn(n, strings.TrimSuffix(string(buf), "\r")); err != nil {
			return long, err
		}
		buf, tooLong = buf[:0], false
	}
}

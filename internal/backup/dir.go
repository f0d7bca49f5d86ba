package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/loginsystem/internal/filex"
	"github.com/pkg/errors"
)

// DirTarget writes backups below a local directory.
type DirTarget struct {
	dir string
}

// NewDirTarget returns a target rooted at dir.
func NewDirTarget(dir string) *DirTarget {
	return &DirTarget{dir: dir}
}

// Put writes body to dir/key through a temporary file, so a partial copy is
// never visible under the final name.
func (t *DirTarget) Put(ctx context.Context, key string, body io.ReadSeeker) (string, error) {
	dst := filepath.Join(t.dir, filepath.FromSlash(key))
	if err := filex.EnsureParentDir(dst); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".backup-*")
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer os.Remove(tmp.Name())

	if err := ctx.Err(); err != nil {
		tmp.Close()
		return "", err
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "copy to %s", tmp.Name())
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.WithStack(err)
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", errors.WithStack(err)
	}

	return dst, nil
}

func (t *DirTarget) String() string { return t.dir }

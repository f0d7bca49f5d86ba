// Package backup copies the users file to a backup target: a local directory
// or an S3-compatible bucket.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/dmitrijs2005/loginsystem/internal/config"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Target stores one backup copy under key and returns where it was written.
type Target interface {
	Put(ctx context.Context, key string, body io.ReadSeeker) (string, error)
	String() string
}

// Source hands out a consistent, read-only view of the file to back up.
type Source interface {
	Snapshot(ctx context.Context, fn func(f *os.File) error) error
}

var newUUID = uuid.New

// ObjectKey returns a unique key for a backup taken at now, of the form
// users/YYYY/MM/DD/<uuid>.txt.
func ObjectKey(now time.Time) string {
	now = now.UTC()
	return fmt.Sprintf("users/%04d/%02d/%02d/%s.txt", now.Year(), now.Month(), now.Day(), newUUID())
}

// NewTarget builds the target described by cfg. Dir wins over S3.
// With neither configured it returns common.ErrNotConfigured.
func NewTarget(ctx context.Context, cfg config.Backup) (Target, error) {
	switch {
	case cfg.Dir != "":
		return NewDirTarget(cfg.Dir), nil
	case cfg.S3.Enabled():
		return NewS3Target(ctx, cfg.S3)
	}
	return nil, errors.Wrap(common.ErrNotConfigured, "backup target")
}

// Run copies the current contents of src to t under a fresh ObjectKey and
// returns the written location.
func Run(ctx context.Context, src Source, t Target, now time.Time) (string, error) {
	key := ObjectKey(now)

	var location string
	err := src.Snapshot(ctx, func(f *os.File) error {
		var err error
		location, err = t.Put(ctx, key, f)
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, "backup to %s", t)
	}

	return location, nil
}

package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/loginsystem/internal/backup"
	"github.com/dmitrijs2005/loginsystem/internal/common"
)

// Backup copies the users file to the configured backup target.
func (a *App) Backup(ctx context.Context) error {
	target, err := a.newTarget(ctx, a.backupCfg)
	if err != nil {
		if errors.Is(err, common.ErrNotConfigured) {
			a.printf("Backup is not configured: set backup.dir or backup.s3.bucket.\n")
		} else {
			a.printf("Backup target unavailable: %v\n", err)
		}
		return err
	}

	location, err := backup.Run(ctx, a.store, target, a.now())
	if err != nil {
		a.logger.Error(ctx, "backup failed", "target", target.String(), "error", err)
		if errors.Is(err, common.ErrorNotFound) {
			a.printf("Nothing to back up: no users registered yet.\n")
		} else {
			a.printf("Backup failed: %v\n", err)
		}
		return err
	}

	a.logger.Info(ctx, "backup written", "location", location)
	a.printf("Backup written to %s\n", location)
	return nil
}

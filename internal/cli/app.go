package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/loginsystem/internal/backup"
	"github.com/dmitrijs2005/loginsystem/internal/config"
	"github.com/dmitrijs2005/loginsystem/internal/logging"
	"github.com/dmitrijs2005/loginsystem/internal/models"
)

// CredentialStore is the store surface the CLI drives.
type CredentialStore interface {
	RegisterUser(ctx context.Context, firstName, lastName, username, password, email string) error
	DoesUsernameExist(username string) bool
	IsValidLogin(ctx context.Context, username, password string) bool
	User(username string) (models.User, bool)
	Usernames() []string
	Snapshot(ctx context.Context, fn func(f *os.File) error) error
}

type App struct {
	store     CredentialStore
	backupCfg config.Backup
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	newTarget func(ctx context.Context, cfg config.Backup) (backup.Target, error)
	now       func() time.Time
}

// NewApp returns an App reading from stdin and writing to stdout.
func NewApp(store CredentialStore, cfg *config.Config, logger logging.Logger) *App {
	return &App{
		store:     store,
		backupCfg: cfg.Backup,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		newTarget: backup.NewTarget,
		now:       time.Now,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to loginsystem (type 'help' for commands)\n")
	runREPL(ctx, a, a.reader, a.out)
}

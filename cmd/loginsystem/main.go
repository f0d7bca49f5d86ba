package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/loginsystem/internal/cli"
	"github.com/dmitrijs2005/loginsystem/internal/config"
	"github.com/dmitrijs2005/loginsystem/internal/credentials"
	"github.com/dmitrijs2005/loginsystem/internal/cryptox"
	"github.com/dmitrijs2005/loginsystem/internal/denylist"
	"github.com/dmitrijs2005/loginsystem/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if zl, ok := logger.(*logging.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	hasher, err := cryptox.NewHasher(cfg.HashAlgorithm, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()

	dl := denylist.NewFile(cfg.DenylistFile)

	store := credentials.NewStore(ctx, cfg.UsersFile,
		credentials.WithDelimiter(cfg.Delimiter),
		credentials.WithHasher(hasher),
		credentials.WithDenylist(dl),
		credentials.WithStrongPasswords(cfg.RequireStrongPassword),
		credentials.WithLogger(logger),
	)

	logger.Info(ctx, "store ready", "users", store.Len(), "algorithm", hasher.Algorithm(), "denylist", dl.Path())

	app := cli.NewApp(store, cfg, logger)
	app.Run(ctx)
}

package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/loginsystem/internal/flagx"
	"github.com/pkg/errors"
)

// parseFlags overrides cfg with command-line flags:
//
//	-u string   users file
//	-d string   denylist file ("" disables the denylist)
//	-a string   hash algorithm for new registrations: sha256, argon2id or bcrypt
//	-l string   log level
//	-s          require strong passwords on registration
//
// args is filtered with flagx.FilterArgs so the -c/-config flag handled by
// parseSources does not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-d", "-a", "-l"}, "-s")

	fs := flag.NewFlagSet("loginsystem", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.UsersFile, "u", cfg.UsersFile, "users file")
	fs.StringVar(&cfg.DenylistFile, "d", cfg.DenylistFile, "denylist file")
	fs.StringVar(&cfg.HashAlgorithm, "a", cfg.HashAlgorithm, "hash algorithm (sha256, argon2id, bcrypt)")
	fs.StringVar(&cfg.Log.Level, "l", cfg.Log.Level, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.RequireStrongPassword, "s", cfg.RequireStrongPassword, "require strong passwords")

	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse flags")
	}
	return nil
}

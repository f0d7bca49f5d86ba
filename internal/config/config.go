package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/loginsystem/internal/cryptox"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Config holds runtime settings for the loginsystem CLI.
type Config struct {
	UsersFile             string `koanf:"users_file" validate:"required"`
	DenylistFile          string `koanf:"denylist_file"`
	Delimiter             string `koanf:"delimiter" validate:"delimiter"`
	HashAlgorithm         string `koanf:"hash_algorithm" validate:"oneof=sha256 argon2id bcrypt"`
	BcryptCost            int    `koanf:"bcrypt_cost" validate:"min=4,max=31"`
	RequireStrongPassword bool   `koanf:"require_strong_password"`

	Log    Log    `koanf:"log"`
	Backup Backup `koanf:"backup"`
}

// Log configures the process logger.
type Log struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=text json zap"`
}

// Backup configures where the backup command copies the users file.
// Dir takes precedence over S3 when both are set.
type Backup struct {
	Dir string `koanf:"dir"`
	S3  S3     `koanf:"s3"`
}

// S3 describes an S3-compatible bucket. Empty credentials fall back to the
// default AWS credential chain. BaseEndpoint targets MinIO and similar.
type S3 struct {
	Bucket       string `koanf:"bucket"`
	Region       string `koanf:"region" validate:"required_with=Bucket"`
	BaseEndpoint string `koanf:"base_endpoint" validate:"omitempty,url"`
	AccessKey    string `koanf:"access_key" validate:"required_with=SecretKey"`
	SecretKey    string `koanf:"secret_key" validate:"required_with=AccessKey"`
	Prefix       string `koanf:"prefix"`
}

// Enabled reports whether a bucket is configured.
func (s S3) Enabled() bool { return s.Bucket != "" }

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.UsersFile = "users.txt"
	c.DenylistFile = "dictbadpass.txt"
	c.Delimiter = ";"
	c.HashAlgorithm = "sha256"
	c.BcryptCost = 10
	c.RequireStrongPassword = false
	c.Log.Level = "info"
	c.Log.Format = "text"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		d := fl.Field().String()
		return len([]rune(d)) == 1 && !strings.ContainsAny(d, "\r\n") && !cryptox.ConflictsWithHashes(d)
	})
	return v
}

// Validate checks c against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// LoadConfig builds a Config from the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Environ())
}

// Load builds a Config by applying defaults, then the YAML file named by
// -c/-config (if any), then LOGINSYSTEM_* variables from environ, then flags
// from args. Later sources take precedence. The result is validated.
func Load(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseSources(cfg, args, environ); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loginsystem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "users.txt", c.UsersFile)
	assert.Equal(t, "dictbadpass.txt", c.DenylistFile)
	assert.Equal(t, ";", c.Delimiter)
	assert.Equal(t, "sha256", c.HashAlgorithm)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.RequireStrongPassword)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "text", c.Log.Format)
	assert.Empty(t, c.Backup.Dir)
	assert.False(t, c.Backup.S3.Enabled())
	require.NoError(t, c.Validate())
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil, nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeTempYAML(t, `
users_file: /data/users.txt
denylist_file: ""
hash_algorithm: argon2id
require_strong_password: true
log:
  level: debug
  format: json
backup:
  s3:
    bucket: users-backup
    region: eu-central-1
    base_endpoint: http://127.0.0.1:9000
    access_key: minio
    secret_key: minio123
    prefix: prod/
`)

	cfg, err := Load([]string{"-c", path}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/data/users.txt", cfg.UsersFile)
	assert.Empty(t, cfg.DenylistFile)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, "argon2id", cfg.HashAlgorithm)
	assert.True(t, cfg.RequireStrongPassword)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Backup.S3.Enabled())
	assert.Equal(t, S3{
		Bucket:       "users-backup",
		Region:       "eu-central-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		Prefix:       "prod/",
	}, cfg.Backup.S3)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempYAML(t, `
users_file: from-file.txt
denylist_file: file-deny.txt
hash_algorithm: bcrypt
bcrypt_cost: 12
log:
  level: warn
`)

	environ := []string{
		"LOGINSYSTEM_USERS_FILE=from-env.txt",
		"LOGINSYSTEM_BCRYPT_COST=11",
		"LOGINSYSTEM_LOG__FORMAT=zap",
		"LOGINSYSTEM_BACKUP__DIR=/backups",
		"LOGINSYSTEM_REQUIRE_STRONG_PASSWORD=true",
		"OTHER_USERS_FILE=ignored.txt",
	}
	args := []string{"-config", path, "-u", "from-flag.txt", "-l", "error"}

	cfg, err := Load(args, environ)
	require.NoError(t, err)

	assert.Equal(t, "from-flag.txt", cfg.UsersFile, "flag beats env and file")
	assert.Equal(t, "error", cfg.Log.Level, "flag beats file")
	assert.Equal(t, 11, cfg.BcryptCost, "env beats file")
	assert.Equal(t, "zap", cfg.Log.Format, "env beats default")
	assert.Equal(t, "/backups", cfg.Backup.Dir)
	assert.True(t, cfg.RequireStrongPassword)
	assert.Equal(t, "file-deny.txt", cfg.DenylistFile, "file beats default")
	assert.Equal(t, "bcrypt", cfg.HashAlgorithm)
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{"-u", "u.txt", "-d", "d.txt", "-a", "bcrypt", "-s", "-l", "debug"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "u.txt", cfg.UsersFile)
	assert.Equal(t, "d.txt", cfg.DenylistFile)
	assert.Equal(t, "bcrypt", cfg.HashAlgorithm)
	assert.True(t, cfg.RequireStrongPassword)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ []string
	}{
		{"missing config file", []string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}, nil},
		{"bad yaml", []string{"-c", writeTempYAML(t, "users_file: [unterminated")}, nil},
		{"unknown algorithm", []string{"-a", "md5"}, nil},
		{"bad log level", []string{"-l", "verbose"}, nil},
		{"bad log format", nil, []string{"LOGINSYSTEM_LOG__FORMAT=xml"}},
		{"bcrypt cost not a number", nil, []string{"LOGINSYSTEM_BCRYPT_COST=lots"}},
		{"bcrypt cost out of range", nil, []string{"LOGINSYSTEM_BCRYPT_COST=99"}},
		{"empty users file", []string{"-u", ""}, nil},
		{"multi-char delimiter", nil, []string{"LOGINSYSTEM_DELIMITER=::"}},
		{"newline delimiter", nil, []string{"LOGINSYSTEM_DELIMITER=\n"}},
		{"hex digit delimiter", nil, []string{"LOGINSYSTEM_DELIMITER=a"}},
		{"phc separator delimiter", nil, []string{"LOGINSYSTEM_DELIMITER=$"}},
		{"base64 delimiter", []string{"-c", writeTempYAML(t, "delimiter: \"/\"")}, nil},
		{"bucket without region", nil, []string{"LOGINSYSTEM_BACKUP__S3__BUCKET=b"}},
		{"access key without secret", nil, []string{"LOGINSYSTEM_BACKUP__S3__ACCESS_KEY=k"}},
		{"bad endpoint", nil, []string{"LOGINSYSTEM_BACKUP__S3__BASE_ENDPOINT=not a url"}},
		{"bad bool flag", []string{"-s=maybe"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.args, tt.environ)
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LOGINSYSTEM_USERS_FILE", "users_file"},
		{"LOGINSYSTEM_LOG__LEVEL", "log.level"},
		{"LOGINSYSTEM_BACKUP__S3__BASE_ENDPOINT", "backup.s3.base_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, v := envKey(tt.in, "x")
			assert.Equal(t, tt.want, k)
			assert.Equal(t, "x", v)
		})
	}
}

func TestLoadConfig_UsesProcessArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"loginsystem", "-u", "proc.txt"}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "proc.txt", cfg.UsersFile)
}

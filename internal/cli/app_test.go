package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/loginsystem/internal/backup"
	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/dmitrijs2005/loginsystem/internal/config"
	"github.com/dmitrijs2005/loginsystem/internal/credentials"
	"github.com/dmitrijs2005/loginsystem/internal/denylist"
	"github.com/dmitrijs2005/loginsystem/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app   *App
	out   *bytes.Buffer
	store *credentials.Store
	path  string
}

func newTestApp(t *testing.T, input string, opts ...credentials.Option) *testEnv {
	t.Helper()
	stubTerminal(t, false)

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "users.txt")
	store := credentials.NewStore(ctx, path, opts...)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Backup.Dir = filepath.Join(dir, "backups")

	app := NewApp(store, cfg, logging.NewDiscard())
	out := &bytes.Buffer{}
	app.reader = rdr(input)
	app.out = out
	app.now = func() time.Time { return time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC) }

	return &testEnv{app: app, out: out, store: store, path: path}
}

func registerInput(first, last, username, email, password, confirm string) string {
	return strings.Join([]string{first, last, username, email, password, confirm}, "\n") + "\n"
}

func TestApp_Register(t *testing.T) {
	env := newTestApp(t, registerInput("Alice", "Smith", "alice", "alice@example.com", "Secret123!", "Secret123!"))

	require.NoError(t, env.app.Register(context.Background()))

	assert.Contains(t, env.out.String(), `User "alice" registered.`)
	assert.NotContains(t, env.out.String(), "Warning")
	assert.True(t, env.store.DoesUsernameExist("alice"))
	assert.True(t, env.store.IsValidLogin(context.Background(), "alice", "Secret123!"))
}

func TestApp_Register_WeakPasswordWarns(t *testing.T) {
	env := newTestApp(t, registerInput("Bob", "Jones", "bob", "", "abc", "abc"))

	require.NoError(t, env.app.Register(context.Background()))

	assert.Contains(t, env.out.String(), "Warning: a strong password has at least 8 characters")
	assert.True(t, env.store.DoesUsernameExist("bob"))
}

func TestApp_Register_StrongPolicyRejects(t *testing.T) {
	env := newTestApp(t, registerInput("Bob", "Jones", "bob", "", "abc", "abc"), credentials.WithStrongPasswords(true))

	err := env.app.Register(context.Background())
	require.ErrorIs(t, err, common.ErrWeakOrBannedPassword)
	assert.Contains(t, env.out.String(), "Password is too weak or too common")
	assert.False(t, env.store.DoesUsernameExist("bob"))
}

func TestApp_Register_Mismatch(t *testing.T) {
	env := newTestApp(t, registerInput("Bob", "Jones", "bob", "", "Secret123!", "Secret123?"))

	err := env.app.Register(context.Background())
	require.ErrorIs(t, err, errPasswordMismatch)
	assert.Contains(t, env.out.String(), "Passwords do not match.")
	assert.False(t, env.store.DoesUsernameExist("bob"))
}

func TestApp_Register_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate", func(t *testing.T) {
		env := newTestApp(t, registerInput("A", "B", "alice", "", "Secret123!", "Secret123!"))
		require.NoError(t, env.store.RegisterUser(ctx, "X", "Y", "alice", "pw", ""))

		err := env.app.Register(ctx)
		require.ErrorIs(t, err, common.ErrDuplicateUsername)
		assert.Contains(t, env.out.String(), "Username already exists.")
	})

	t.Run("delimiter", func(t *testing.T) {
		env := newTestApp(t, registerInput("A;B", "C", "ab", "", "Secret123!", "Secret123!"))

		err := env.app.Register(ctx)
		require.ErrorIs(t, err, common.ErrInvalidCharacter)
		assert.Contains(t, env.out.String(), "must not contain the delimiter")
	})

	t.Run("denylisted", func(t *testing.T) {
		dl := filepath.Join(t.TempDir(), "dictbadpass.txt")
		require.NoError(t, os.WriteFile(dl, []byte("Password1!\n"), 0o600))

		env := newTestApp(t, registerInput("A", "B", "ab", "", "Password1!", "Password1!"),
			credentials.WithDenylist(denylist.NewFile(dl)))

		err := env.app.Register(ctx)
		require.ErrorIs(t, err, common.ErrWeakOrBannedPassword)
	})

	t.Run("input ends early", func(t *testing.T) {
		env := newTestApp(t, "A\nB\n")

		err := env.app.Register(ctx)
		require.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 0, len(env.store.Usernames()))
	})
}

func TestRegistrationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{common.ErrDuplicateUsername, "Username already exists."},
		{common.ErrHashingUnavailable, "Password hashing is unavailable, registration aborted."},
		{common.ErrPersistenceFailure, "Could not save the user, nothing was registered."},
		{errors.New("other"), "Registration failed: other"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, registrationMessage(tt.err))
	}
}

func TestApp_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid", "alice\nSecret123!\n", "Login successful! Welcome, Alice Smith."},
		{"wrong password", "alice\nwrong\n", "Invalid username or password. Please try again."},
		{"unknown user", "nobody\nSecret123!\n", "Invalid username or password. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestApp(t, tt.input)
			require.NoError(t, env.store.RegisterUser(ctx, "Alice", "Smith", "alice", "Secret123!", ""))

			require.NoError(t, env.app.Login(ctx))
			assert.Contains(t, env.out.String(), tt.want)
		})
	}
}

func TestApp_Login_NoNameGreetsUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestApp(t, "anon\npw\n")
	require.NoError(t, env.store.RegisterUser(ctx, "", "", "anon", "pw", ""))

	require.NoError(t, env.app.Login(ctx))
	assert.Contains(t, env.out.String(), "Welcome, anon.")
}

func TestApp_Exists(t *testing.T) {
	ctx := context.Background()
	env := newTestApp(t, "bob\n")
	require.NoError(t, env.store.RegisterUser(ctx, "Alice", "Smith", "alice", "pw", ""))

	require.NoError(t, env.app.Exists(ctx, "alice"))
	require.NoError(t, env.app.Exists(ctx, ""))

	assert.Contains(t, env.out.String(), `Username "alice" exists.`)
	assert.Contains(t, env.out.String(), `Username "bob" does not exist.`)
}

func TestApp_Strength(t *testing.T) {
	env := newTestApp(t, "Abcdef1!\nabcdefgh\n")

	require.NoError(t, env.app.Strength(context.Background()))
	require.NoError(t, env.app.Strength(context.Background()))

	out := env.out.String()
	assert.Contains(t, out, "Password is strong.")
	assert.Contains(t, out, "Password is weak:")
	assert.Equal(t, 0, len(env.store.Usernames()), "strength check stores nothing")
}

func TestApp_List(t *testing.T) {
	ctx := context.Background()
	env := newTestApp(t, "")

	require.NoError(t, env.app.List(ctx))
	assert.Contains(t, env.out.String(), "No users registered.")

	require.NoError(t, env.store.RegisterUser(ctx, "Bob", "Jones", "bob", "pw", "bob@x.io"))
	require.NoError(t, env.store.RegisterUser(ctx, "Alice", "Smith", "alice", "pw", "alice@x.io"))
	env.out.Reset()

	require.NoError(t, env.app.List(ctx))
	out := env.out.String()
	assert.Less(t, strings.Index(out, "alice"), strings.Index(out, "bob"))
	assert.Contains(t, out, "Alice Smith")
	assert.Contains(t, out, "2 user(s)")

	u, _ := env.store.User("alice")
	assert.NotContains(t, out, u.PasswordHash)
}

func TestApp_Backup(t *testing.T) {
	ctx := context.Background()
	env := newTestApp(t, "")
	require.NoError(t, env.store.RegisterUser(ctx, "Alice", "Smith", "alice", "pw", ""))

	require.NoError(t, env.app.Backup(ctx))

	out := env.out.String()
	require.Contains(t, out, "Backup written to ")
	location := strings.TrimSpace(strings.TrimPrefix(out, "Backup written to "))
	assert.Contains(t, location, filepath.Join("backups", "users", "2024", "05", "01"))

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	want, err := os.ReadFile(env.path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestApp_Backup_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		env := newTestApp(t, "")
		env.app.backupCfg = config.Backup{}

		err := env.app.Backup(ctx)
		require.ErrorIs(t, err, common.ErrNotConfigured)
		assert.Contains(t, env.out.String(), "Backup is not configured")
	})

	t.Run("target error", func(t *testing.T) {
		env := newTestApp(t, "")
		env.app.newTarget = func(context.Context, config.Backup) (backup.Target, error) {
			return nil, errors.New("no route")
		}

		require.Error(t, env.app.Backup(ctx))
		assert.Contains(t, env.out.String(), "Backup target unavailable: no route")
	})

	t.Run("no users file", func(t *testing.T) {
		env := newTestApp(t, "")

		err := env.app.Backup(ctx)
		require.ErrorIs(t, err, common.ErrorNotFound)
		assert.Contains(t, env.out.String(), "Nothing to back up")
	})
}

func TestApp_Run(t *testing.T) {
	input := registerInput("Alice", "Smith", "alice", "a@x.io", "Secret123!", "Secret123!")
	env := newTestApp(t, "register\n"+input+"login\nalice\nSecret123!\nexit\n")

	env.app.Run(context.Background())

	out := env.out.String()
	assert.Contains(t, out, "Welcome to loginsystem")
	assert.Contains(t, out, `User "alice" registered.`)
	assert.Contains(t, out, "Login successful! Welcome, Alice Smith.")
	assert.Contains(t, out, "loginsystem> Bye!\n")
}

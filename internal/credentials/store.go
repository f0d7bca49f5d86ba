package credentials

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/dmitrijs2005/loginsystem/internal/cryptox"
	"github.com/dmitrijs2005/loginsystem/internal/filex"
	"github.com/dmitrijs2005/loginsystem/internal/logging"
	"github.com/dmitrijs2005/loginsystem/internal/models"
	"github.com/pkg/errors"
)

// Denylist reports whether a plaintext password is banned.
type Denylist interface {
	Contains(ctx context.Context, password string) (bool, error)
}

// Store owns the user index and the users file it mirrors.
type Store struct {
	mu    sync.RWMutex
	users map[string]models.User

	path          string
	delimiter     string
	hasher        cryptox.Hasher
	denylist      Denylist
	requireStrong bool
	logger        logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDelimiter sets the field delimiter. It must be a single character
// other than CR or LF that no hash encoding uses (see
// cryptox.ConflictsWithHashes); anything else keeps DefaultDelimiter.
func WithDelimiter(d string) Option {
	return func(s *Store) { s.delimiter = d }
}

// WithHasher sets the hasher used for new registrations.
func WithHasher(h cryptox.Hasher) Option {
	return func(s *Store) { s.hasher = h }
}

// WithDenylist sets the denylist consulted on registration.
func WithDenylist(d Denylist) Option {
	return func(s *Store) { s.denylist = d }
}

// WithStrongPasswords makes registration reject passwords that fail
// IsPasswordStrong.
func WithStrongPasswords(require bool) Option {
	return func(s *Store) { s.requireStrong = require }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store for the users file at path and loads it.
// Load failures are logged and leave the store empty or partially filled;
// they never prevent construction.
func NewStore(ctx context.Context, path string, opts ...Option) *Store {
	s := &Store{
		users:     make(map[string]models.User),
		path:      path,
		delimiter: DefaultDelimiter,
		hasher:    cryptox.SHA256Hasher{},
		logger:    logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("component", "credentials", "path", path)

	if !ValidDelimiter(s.delimiter) {
		s.logger.Warn(ctx, "invalid delimiter, using default", "delimiter", s.delimiter)
		s.delimiter = DefaultDelimiter
	}

	_ = s.Load(ctx)

	return s
}

// Load rebuilds the index from the users file. Lines that do not split into
// exactly five fields, or are too long to read, are skipped. A missing file yields an empty store.
// On a read error the records read so far are kept and the error returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]models.User)
	skipped := 0

	long, err := filex.ReadLines(s.path, func(n int, line string) error {
		u, ok := decodeLine(line, s.delimiter)
		if !ok {
			skipped++
			s.logger.Warn(ctx, "skipping malformed line", "line", n)
			return nil
		}
		if _, dup := users[u.Username]; dup {
			s.logger.Warn(ctx, "duplicate username in users file, later line wins", "line", n, "username", u.Username)
		}
		users[u.Username] = u
		return nil
	})

	for _, n := range long {
		skipped++
		s.logger.Warn(ctx, "skipping malformed line", "line", n, "reason", "line too long")
	}

	s.users = users

	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info(ctx, "users file not found, starting empty")
		return nil
	case err != nil:
		s.logger.Error(ctx, "reading users file", "error", err, "loaded", len(users))
		return errors.Wrap(common.ErrPersistenceFailure, err.Error())
	}

	s.logger.Debug(ctx, "users loaded", "users", len(users), "skipped", skipped)
	return nil
}

// RegisterUser validates and stores a new user. Validation runs in order and
// stops at the first failure:
//
//  1. common.ErrDuplicateUsername if username is taken;
//  2. common.ErrInvalidCharacter if any value contains the delimiter or a line break;
//  3. common.ErrWeakOrBannedPassword if password is on the denylist, or is not
//     strong while WithStrongPasswords is set.
//
// A hashing failure, or a hash containing the delimiter, returns
// common.ErrHashingUnavailable. If the line cannot be
// appended to the users file the in-memory insert is rolled back and
// common.ErrPersistenceFailure is returned. Failures leave store and file unchanged.
func (s *Store) RegisterUser(ctx context.Context, firstName, lastName, username, password, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := s.logger.With("username", username)

	if _, exists := s.users[username]; exists {
		log.Info(ctx, "registration rejected", "reason", "duplicate username")
		return errors.Wrapf(common.ErrDuplicateUsername, "username %q", username)
	}

	if field := reservedField(s.delimiter, firstName, lastName, username, password, email); field != "" {
		log.Info(ctx, "registration rejected", "reason", "reserved character", "field", field)
		return errors.Wrapf(common.ErrInvalidCharacter, "%s must not contain %q or line breaks", field, s.delimiter)
	}

	if err := s.checkPassword(ctx, log, password); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error(ctx, "hashing password", "error", err, "algorithm", s.hasher.Algorithm())
		if !errors.Is(err, common.ErrHashingUnavailable) {
			err = errors.Wrap(common.ErrHashingUnavailable, err.Error())
		}
		return err
	}

	if strings.Contains(hash, s.delimiter) || strings.ContainsAny(hash, "\r\n") {
		log.Error(ctx, "hash contains a reserved character", "algorithm", s.hasher.Algorithm())
		return errors.Wrapf(common.ErrHashingUnavailable, "%s hash contains %q or a line break", s.hasher.Algorithm(), s.delimiter)
	}

	user := models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: hash,
		Email:        email,
	}

	s.users[username] = user

	if err := filex.AppendLine(s.path, encodeLine(user, s.delimiter)); err != nil {
		// Rollback
		delete(s.users, username)
		log.Error(ctx, "saving user", "error", err)
		return errors.Wrap(common.ErrPersistenceFailure, err.Error())
	}

	log.Info(ctx, "user registered", "algorithm", s.hasher.Algorithm())
	return nil
}

func (s *Store) checkPassword(ctx context.Context, log logging.Logger, password string) error {
	if s.denylist != nil {
		banned, err := s.denylist.Contains(ctx, password)
		if err != nil {
			log.Warn(ctx, "denylist unavailable, password not checked", "error", err)
		}
		if banned {
			log.Info(ctx, "registration rejected", "reason", "denylisted password")
			return errors.Wrap(common.ErrWeakOrBannedPassword, "password is on the denylist")
		}
	}

	if s.requireStrong && !IsPasswordStrong(password) {
		log.Info(ctx, "registration rejected", "reason", "weak password")
		return errors.Wrap(common.ErrWeakOrBannedPassword, "password does not meet the strength policy")
	}

	return nil
}

// DoesUsernameExist reports whether username is registered.
func (s *Store) DoesUsernameExist(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[username]
	return ok
}

// IsValidLogin reports whether username is registered and password matches
// its stored hash.
func (s *Store) IsValidLogin(ctx context.Context, username, password string) bool {
	s.mu.RLock()
	user, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		s.logger.Info(ctx, "login failed", "username", username, "reason", "unknown user")
		return false
	}

	if !cryptox.Verify(password, user.PasswordHash) {
		s.logger.Info(ctx, "login failed", "username", username, "reason", "password mismatch")
		return false
	}

	s.logger.Debug(ctx, "login succeeded", "username", username)
	return true
}

// User returns a copy of the record for username.
func (s *Store) User(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	return u, ok
}

// Usernames returns all registered usernames, sorted.
func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

// Path returns the users file path.
func (s *Store) Path() string {
	return s.path
}

// Snapshot opens the users file read-only and passes it to fn while holding
// the store's read lock, so no registration appends during the call.
// A missing file yields common.ErrorNotFound.
func (s *Store) Snapshot(ctx context.Context, fn func(f *os.File) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(common.ErrorNotFound, "users file %s", s.path)
		}
		return errors.WithStack(err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(f)
}

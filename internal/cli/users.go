package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/dmitrijs2005/loginsystem/internal/credentials"
)

var strengthHint = fmt.Sprintf(
	"a strong password has at least %d characters and mixes upper and lower case letters, digits and symbols.",
	credentials.MinPasswordLength,
)

// Exists reports whether username is taken, prompting for it when empty.
func (a *App) Exists(_ context.Context, username string) error {
	if username == "" {
		var err error
		if username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
			return err
		}
	}

	if a.store.DoesUsernameExist(username) {
		a.printf("Username %q exists.\n", username)
	} else {
		a.printf("Username %q does not exist.\n", username)
	}
	return nil
}

// Strength checks a password against the strength policy without storing it.
func (a *App) Strength(_ context.Context) error {
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if credentials.IsPasswordStrong(string(password)) {
		a.printf("Password is strong.\n")
	} else {
		a.printf("Password is weak: %s\n", strengthHint)
	}
	return nil
}

// List prints registered users sorted by username. Password hashes are
// never shown.
func (a *App) List(_ context.Context) error {
	names := a.store.Usernames()
	if len(names) == 0 {
		a.printf("No users registered.\n")
		return nil
	}

	for _, name := range names {
		u, ok := a.store.User(name)
		if !ok {
			continue
		}
		a.printf("%-20s %-30s %s\n", u.Username, u.FullName(), u.Email)
	}
	a.printf("%d user(s)\n", len(names))
	return nil
}

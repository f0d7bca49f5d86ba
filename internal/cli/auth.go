package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/dmitrijs2005/loginsystem/internal/credentials"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Register prompts for the five user fields and a confirmed password and
// registers the user. A weak password is reported but only rejected when the
// store requires strong passwords. Each registration error kind gets its own
// message; the error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	var fields [4]string
	for i, prompt := range []string{"First name", "Last name", "Username", "Email"} {
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	firstName, lastName, username, email := fields[0], fields[1], fields[2], fields[3]

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		a.printf("Passwords do not match.\n")
		return errPasswordMismatch
	}

	if !credentials.IsPasswordStrong(string(password)) {
		a.printf("Warning: %s\n", strengthHint)
	}

	err = a.store.RegisterUser(ctx, firstName, lastName, username, string(password), email)
	if err != nil {
		a.printf("%s\n", registrationMessage(err))
		return err
	}

	a.printf("User %q registered.\n", username)
	return nil
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return "Username already exists."
	case errors.Is(err, common.ErrInvalidCharacter):
		return "Fields must not contain the delimiter or line breaks."
	case errors.Is(err, common.ErrWeakOrBannedPassword):
		return "Password is too weak or too common, choose another one."
	case errors.Is(err, common.ErrHashingUnavailable):
		return "Password hashing is unavailable, registration aborted."
	case errors.Is(err, common.ErrPersistenceFailure):
		return "Could not save the user, nothing was registered."
	}
	return "Registration failed: " + err.Error()
}

// Login prompts for a username and password and reports whether they match
// a registered user.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.store.IsValidLogin(ctx, username, string(password)) {
		a.printf("Invalid username or password. Please try again.\n")
		return nil
	}

	greeting := username
	if u, ok := a.store.User(username); ok && u.FullName() != "" {
		greeting = u.FullName()
	}
	a.printf("Login successful! Welcome, %s.\n", greeting)
	return nil
}

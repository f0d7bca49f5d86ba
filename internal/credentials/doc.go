// Package credentials implements the credential store: an in-memory index of
// registered users backed by a line-oriented users file.
//
// Each line of the file holds one user as five delimiter-separated fields:
//
//	firstName;lastName;username;passwordHash;email
//
// The index is rebuilt from the file when the store is created and every
// successful registration appends exactly one line. Records are never updated
// or removed by the store.
//
// Typical use:
//
//	store := credentials.NewStore(ctx, "users.txt",
//		credentials.WithDenylist(denylist.NewFile("dictbadpass.txt")),
//		credentials.WithLogger(logger),
//	)
//	if err := store.RegisterUser(ctx, "Alice", "Smith", "alice", "Secret123!", "alice@example.com"); err != nil {
//		// errors.Is(err, common.ErrDuplicateUsername), ...
//	}
//	ok := store.IsValidLogin(ctx, "alice", "Secret123!")
package credentials

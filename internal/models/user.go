// Package models holds the plain data types shared between the credential
// store and its front ends.
package models

// User is one registered account as it is persisted in the users file.
//
// PasswordHash never holds a plaintext password: it is the encoded output of
// one of the cryptox hashers (64 lowercase hex characters for sha256).
// The store hands out copies, so a User obtained from it cannot be used to
// modify the stored record.
type User struct {
	FirstName    string
	LastName     string
	Username     string
	PasswordHash string
	Email        string
}

// Fields returns the record's fields in persisted order.
func (u User) Fields() []string {
	return []string{u.FirstName, u.LastName, u.Username, u.PasswordHash, u.Email}
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

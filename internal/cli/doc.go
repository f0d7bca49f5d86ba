// Package cli provides the interactive loginsystem terminal front end.
//
// It wraps a credential store in a read–eval–print loop. Each command prompts
// for its inputs, calls one store operation and prints the outcome:
//
//   - help             — show available commands
//   - register         — create an account
//   - login            — check a username and password
//   - exists <user>    — report whether a username is taken
//   - strength         — check a password against the strength policy
//   - list             — list registered users
//   - backup           — copy the users file to the configured backup target
//   - exit | quit      — leave the program
//
// Passwords are read without echo when stdin is a terminal and as a plain
// line otherwise, so the CLI can be scripted. Password bytes are wiped after
// use. The REPL is started with App.Run, which blocks until the user exits or
// input ends.
package cli

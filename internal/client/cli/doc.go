// Package cli is the terminal presentation layer: a REPL that turns user
// commands into calls on the session store, directory, and profile
// services, and renders notification-channel messages. No business rules
// live here.
package cli

// Package services holds the application services the presentation layer
// talks to: the session/auth flow over the User Store and a persisted
// session slot, and the note service over the Note Store.
package services

// Package models defines the notekeeper records and how they serialize.
package models

import "time"

// User is the public part of an account. It is what login/register return
// and what the session slot stores; it never carries the secret.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRecord is a User as persisted in the users collection, secret
// included.
type UserRecord struct {
	User
	Password string `json:"password"`
}

func (u UserRecord) GetID() string { return u.ID }

// Public strips the secret.
func (u UserRecord) Public() User { return u.User }

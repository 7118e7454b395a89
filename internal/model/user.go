// Package model defines the data structures shared by every layer.
package model

import "time"

// User represents a registered account.
//
// EmailAddress is always stored lowercase; it is the login name for HTTP
// Basic authentication. PasswordHash holds the bcrypt output and is tagged
// json:"-" so it can never be serialised, even by accident.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	EmailAddress string    `json:"emailAddress"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// FullName is what GET /api/users reports for the authenticated caller.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

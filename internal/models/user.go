package models

import "time"

// User is user entity
type User struct {
	ID        uint64
	Login     string
	Password  string
	FullName  string
	IsAdmin   bool
	CreatedAt time.Time
}

// DisplayName returns full name or login if name is empty
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Login
}

// TokenPayload is payload of authorization token
type TokenPayload struct {
	ID        string
	UserID    uint64
	Login     string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiredAt time.Time
}

package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an author is created without a password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// SetPassword stores a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	return validate.Struct(u)
}

// BeforeCreate sets the creation timestamp.
func (u *User) BeforeCreate() {
	if u.Created.IsZero() {
		u.Created = time.Now().UTC()
	}
}

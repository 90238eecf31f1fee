package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserPassword(t *testing.T) {
	user := &User{Username: "admin"}

	assert.ErrorIs(t, user.SetPassword(""), ErrEmptyPassword)

	require.NoError(t, user.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("wrong")))
}

func TestUserValidation(t *testing.T) {
	user := &User{Username: "admin", PasswordHash: "hash"}
	user.BeforeCreate()
	assert.False(t, user.Created.IsZero())
	assert.NoError(t, user.Validate())

	user.Email = "bad"
	assert.Error(t, user.Validate())

	user.Email = ""
	user.Username = ""
	assert.Error(t, user.Validate())
}

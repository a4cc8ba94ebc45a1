package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, ROLE_CLIENT, u.Role)
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.NotEqual(t, "correct-horse", u.Password)
	assert.True(t, u.CheckPassword("correct-horse"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestCreateUserRejectsInvalidInput(t *testing.T) {
	_, err := CreateUser("Ada", "not-an-email", "correct-horse")
	require.Error(t, err)

	_, err = CreateUser("Ad", "ada@example.com", "correct-horse")
	require.Error(t, err)
}

func TestSetPassword(t *testing.T) {
	u, err := CreateUser("Ada Lovelace", "ada@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, u.SetPassword("battery-staple"))
	assert.True(t, u.CheckPassword("battery-staple"))
	assert.False(t, u.CheckPassword("correct-horse"))
}

func TestValidPassword(t *testing.T) {
	assert.False(t, ValidPassword("short"))
	assert.False(t, ValidPassword("1234567"))
	assert.True(t, ValidPassword("12345678"))
}

func TestToggleStatus(t *testing.T) {
	u := &User{Status: STATUS_ACTIVE}

	u.ToggleStatus()
	assert.Equal(t, STATUS_DISABLED, u.Status)
	assert.False(t, u.IsActive())

	u.ToggleStatus()
	assert.Equal(t, STATUS_ACTIVE, u.Status)
	assert.True(t, u.IsActive())
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: ROLE_ADMIN}).IsAdmin())
	assert.False(t, (&User{Role: ROLE_CLIENT}).IsAdmin())
}

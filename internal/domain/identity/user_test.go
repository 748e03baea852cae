package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("hashes the password and lowercases the email", func(t *testing.T) {
		user, err := NewUser("Admin@Example.com", "Admin", "changeit123")
		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.NotEqual(t, "changeit123", user.HashedPassword)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsSuperuser)
		assert.True(t, user.CheckPassword("changeit123"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := NewUser("admin@example.com", "Admin", "short")
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Admin", "changeit123")
		assert.Error(t, err)
	})
}

func TestUser_Flags(t *testing.T) {
	user, err := NewUser("ops@example.com", "Ops", "changeit123")
	require.NoError(t, err)

	user.Promote()
	assert.True(t, user.IsSuperuser)

	user.Deactivate()
	assert.False(t, user.IsActive)
}

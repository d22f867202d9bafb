package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid user", username: "alice", password: "pw123"},
		{name: "short password accepted", username: "alice", password: "p"},
		{name: "empty username", username: "", password: "pw123", wantErr: ErrEmptyUsername},
		{name: "empty password", username: "alice", password: "", wantErr: ErrEmptyPassword},
		{
			name:     "username too long",
			username: strings.Repeat("a", 65),
			password: "pw123",
			wantErr:  ErrUsernameTooLong,
		},
		{
			name:     "password over bcrypt limit",
			username: "alice",
			password: strings.Repeat("p", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			user, err := NewUser(tc.username, tc.password)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tc.username, user.Username)
			assert.False(t, user.CreatedAt.IsZero())
			assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		})
	}
}

func TestUserValidateStoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password, only the hash.
	user := &User{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "$2a$10$something",
	}
	require.NoError(t, user.Validate())

	user.HashedPassword = ""
	require.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestUserCredentialsNeverSerialized(t *testing.T) {
	t.Parallel()

	user, err := NewUser("alice", "pw123")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$something"

	payload, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(payload), "pw123")
	assert.NotContains(t, string(payload), "$2a$10$something")
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-go/internal/store"
	"github.com/bookhive/bookhive-go/internal/testutil"
)

func TestCreateAndGetUser(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	user, err := st.CreateUser("alice", "hashed-password", "admin")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	fetched, err := st.GetUserByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, fetched.ID)
	assert.Equal(t, "admin", fetched.Role)
	assert.Equal(t, "hashed-password", fetched.PasswordHash)

	count, err := st.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	_, err := st.CreateUser("alice", "hash", "user")
	require.NoError(t, err)
	_, err = st.CreateUser("alice", "hash", "user")
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	user, err := st.CreateUser("bob", "hash", "user")
	require.NoError(t, err)

	token, err := st.CreateSession(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	fromSession, err := st.GetUserFromSession(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, fromSession.ID)

	require.NoError(t, st.DeleteSession(token))
	_, err = st.GetUserFromSession(token)
	assert.Error(t, err)
}

func TestGetUserFromSessionInvalidToken(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))
	_, err := st.GetUserFromSession("not-a-token")
	assert.Error(t, err)
}

func TestGetDefaultImportUser(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	_, err := st.GetDefaultImportUser()
	assert.Error(t, err, "no admin yet")

	_, err = st.CreateUser("plain", "hash", "user")
	require.NoError(t, err)
	admin, err := st.CreateUser("root", "hash", "admin")
	require.NoError(t, err)
	_, err = st.CreateUser("root2", "hash", "admin")
	require.NoError(t, err)

	got, err := st.GetDefaultImportUser()
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID, "the oldest admin wins")
}

func TestDeleteUserCascades(t *testing.T) {
	st := store.New(testutil.SetupTestDB(t))

	user, err := st.CreateUser("carol", "hash", "user")
	require.NoError(t, err)
	token, err := st.CreateSession(user.ID)
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(user.ID))

	_, err = st.GetUserFromSession(token)
	assert.Error(t, err)
}

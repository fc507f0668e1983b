package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignUpAssignsID(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	user, err := env.auth.SignUp("alice", "hunter2")
	req.NoError(err)
	req.NotZero(user.ID)
	req.Equal("alice", user.Username)
}

func TestSignUpDuplicateUsername(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	_, err := env.auth.SignUp("alice", "hunter2")
	req.NoError(err)

	_, err = env.auth.SignUp("alice", "other")
	req.ErrorIs(err, ErrUsernameTaken)
}

func TestSignIn(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	created, err := env.auth.SignUp("alice", "hunter2")
	req.NoError(err)

	user, err := env.auth.SignIn("alice", "hunter2")
	req.NoError(err)
	req.Equal(created.ID, user.ID)

	_, err = env.auth.SignIn("alice", "wrong")
	req.ErrorIs(err, ErrInvalidCredentials)

	_, err = env.auth.SignIn("nobody", "hunter2")
	req.ErrorIs(err, ErrInvalidCredentials)
}

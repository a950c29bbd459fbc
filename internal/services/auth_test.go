package services

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/config"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/store"
)

func setupAuth() *AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{LoginDelayMS: 0, LogoutDelayMS: 0}
	return NewAuthService(store.DemoUser, cfg, logger)
}

func TestOnAuthStateChanged(t *testing.T) {
	t.Run("Replays current state on subscribe", func(t *testing.T) {
		auth := setupAuth()

		var states []AuthState
		auth.OnAuthStateChanged(func(s AuthState) { states = append(states, s) })

		assert.Len(t, states, 1)
		assert.Nil(t, states[0].User)
		assert.True(t, states[0].IsLoading)
	})

	t.Run("Unsubscribe stops notifications", func(t *testing.T) {
		auth := setupAuth()

		calls := 0
		unsubscribe := auth.OnAuthStateChanged(func(AuthState) { calls++ })
		unsubscribe()

		auth.Login("")
		assert.Equal(t, 1, calls) // only the replay
	})

	t.Run("All subscribers notified", func(t *testing.T) {
		auth := setupAuth()

		a, b := 0, 0
		auth.OnAuthStateChanged(func(AuthState) { a++ })
		auth.OnAuthStateChanged(func(AuthState) { b++ })

		auth.Login("")
		assert.Equal(t, 3, a) // replay + two transitions
		assert.Equal(t, 3, b)
	})
}

func TestLogin(t *testing.T) {
	t.Run("State sequence", func(t *testing.T) {
		auth := setupAuth()

		var states []AuthState
		auth.OnAuthStateChanged(func(s AuthState) { states = append(states, s) })

		user := auth.Login("")

		assert.Equal(t, store.DemoUser, user)
		assert.Len(t, states, 3)
		// Loading state carries the previous (absent) user.
		assert.Nil(t, states[1].User)
		assert.True(t, states[1].IsLoading)
		// Final state carries the account.
		assert.NotNil(t, states[2].User)
		assert.Equal(t, store.DemoUser.ID, states[2].User.ID)
		assert.False(t, states[2].IsLoading)

		assert.NotNil(t, auth.CurrentUser())
	})

	t.Run("Notifications complete before the call returns", func(t *testing.T) {
		auth := setupAuth()
		auth.sleep = func(time.Duration) {}

		seen := 0
		auth.OnAuthStateChanged(func(AuthState) { seen++ })

		auth.Login("")
		assert.Equal(t, 3, seen)
	})

	t.Run("Navigation side effect", func(t *testing.T) {
		auth := setupAuth()

		var target string
		auth.navigate = func(t string) { target = t }

		auth.Login("/dashboard")
		assert.Equal(t, "/dashboard", target)

		auth.Logout("/")
		assert.Equal(t, "/", target)
	})
}

func TestLogout(t *testing.T) {
	auth := setupAuth()
	auth.Login("")

	var states []AuthState
	auth.OnAuthStateChanged(func(s AuthState) { states = append(states, s) })

	auth.Logout("")

	assert.Len(t, states, 3)
	// Loading state carries the previous (present) user.
	assert.NotNil(t, states[1].User)
	assert.True(t, states[1].IsLoading)
	assert.Nil(t, states[2].User)
	assert.False(t, states[2].IsLoading)
	assert.Nil(t, auth.CurrentUser())
}

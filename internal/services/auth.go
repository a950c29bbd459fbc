package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/LUXA-Digital-Solutions/lynkz/internal/config"
	"github.com/LUXA-Digital-Solutions/lynkz/internal/models"
)

// AuthState is pushed to subscribers on every auth transition.
type AuthState struct {
	User      *models.User `json:"user"`
	IsLoading bool         `json:"isLoading"`
}

// AuthService simulates a single-user login/logout flow. There is exactly one
// account; logging in makes it present, logging out makes it absent. State is
// volatile and resets to logged-out on process restart.
//
// Subscribers are held in an explicit registry keyed by handle, and every
// notification for a transition is delivered before the triggering call
// returns. The artificial delays always run to completion; there is no
// cancellation.
type AuthService struct {
	mu          sync.Mutex
	account     models.User
	currentUser *models.User
	isLoading   bool
	subscribers map[int]func(AuthState)
	nextHandle  int

	loginDelay  time.Duration
	logoutDelay time.Duration
	sleep       func(time.Duration)
	navigate    func(target string)
	logger      *slog.Logger
}

func NewAuthService(account models.User, cfg config.Config, logger *slog.Logger) *AuthService {
	s := &AuthService{
		account:     account,
		isLoading:   true, // until the first state push
		subscribers: make(map[int]func(AuthState)),
		loginDelay:  cfg.LoginDelay(),
		logoutDelay: cfg.LogoutDelay(),
		sleep:       time.Sleep,
		logger:      logger,
	}
	s.navigate = func(target string) {
		logger.Info("Auth: navigation requested", "target", target)
	}
	return s
}

// CurrentUser returns the logged-in account, or nil when logged out.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

// OnAuthStateChanged registers a callback and immediately replays the current
// state to it. The returned function unsubscribes the callback; after it
// returns, no further notifications are delivered to that callback.
func (s *AuthService) OnAuthStateChanged(callback func(AuthState)) (unsubscribe func()) {
	s.mu.Lock()
	handle := s.nextHandle
	s.nextHandle++
	s.subscribers[handle] = callback
	state := AuthState{User: s.currentUser, IsLoading: s.isLoading}
	s.mu.Unlock()

	callback(state)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, handle)
		s.mu.Unlock()
	}
}

// Login simulates signing in: subscribers first see a loading state carrying
// the previous user, then, after the artificial delay, the account. When
// redirectURL is given the navigation side effect runs after the final
// notification.
func (s *AuthService) Login(redirectURL string) models.User {
	s.setAndNotify(func() {
		s.isLoading = true
	})

	s.sleep(s.loginDelay)

	s.setAndNotify(func() {
		user := s.account
		s.currentUser = &user
		s.isLoading = false
	})
	s.logger.Info("Auth: logged in", "user", s.account.ID)

	if redirectURL != "" {
		s.navigate(redirectURL)
	}
	return s.account
}

// Logout simulates signing out, with a shorter delay than Login.
func (s *AuthService) Logout(redirectPath string) {
	s.setAndNotify(func() {
		s.isLoading = true
	})

	s.sleep(s.logoutDelay)

	s.setAndNotify(func() {
		s.currentUser = nil
		s.isLoading = false
	})
	s.logger.Info("Auth: logged out")

	if redirectPath != "" {
		s.navigate(redirectPath)
	}
}

// setAndNotify applies a state mutation and synchronously notifies every
// current subscriber. Callbacks run outside the lock so one may subscribe or
// unsubscribe without deadlocking; notification order is unspecified.
func (s *AuthService) setAndNotify(mutate func()) {
	s.mu.Lock()
	mutate()
	state := AuthState{User: s.currentUser, IsLoading: s.isLoading}
	callbacks := make([]func(AuthState), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(state)
	}
}

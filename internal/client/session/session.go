// Package session owns the process-wide authentication state: the current
// user, the lifecycle state and the persisted token. Every transition is
// announced synchronously to subscribers.
package session

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/logging"
)

// Toast texts.
const (
	MsgLoginOK      = "Login successful!"
	MsgRegisterOK   = "Account created successfully!"
	MsgLogoutOK     = "Logged out successfully"
	MsgProfileOK    = "Profile updated successfully!"
	MsgPasswordOK   = "Password updated successfully!"
	MsgLoginFail    = "Login failed"
	MsgRegisterFail = "Registration failed"
	MsgProfileFail  = "Failed to update profile"
	MsgPasswordFail = "Failed to update password"
)

// ErrRejected is returned when the service answered 2xx without success.
var ErrRejected = errors.New("request rejected")

// AuthAPI is the remote side of the session.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.UserResponse, error)
	UpdatePassword(ctx context.Context, req models.PasswordUpdate) (*models.AuthResponse, error)
}

// TokenStore persists the token across restarts.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Toaster shows transient success and error notices.
type Toaster interface {
	Success(msg string)
	Error(msg string)
}

// Snapshot is an immutable view of the session handed to subscribers.
type Snapshot struct {
	State State
	User  *models.User
}

// Authenticated reports whether a user is present.
func (s Snapshot) Authenticated() bool { return s.User != nil }

// Loading reports whether hydration has not finished.
func (s Snapshot) Loading() bool { return s.State.Loading() }

// Session is the single owned authentication state container.
type Session struct {
	api    AuthAPI
	tokens TokenStore
	toast  Toaster
	log    logging.Logger

	mu      sync.Mutex
	state   State
	user    *models.User
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(api AuthAPI, tokens TokenStore, toast Toaster, log logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		api:    api,
		tokens: tokens,
		toast:  toast,
		log:    log,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn for every transition and returns its cancel func.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *models.User { return s.Snapshot().User }

func (s *Session) State() State { return s.Snapshot().State }

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// set applies a transition and notifies subscribers after releasing the lock.
func (s *Session) set(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	snap := s.snapshotLocked()
	keys := slices.Sorted(maps.Keys(s.subs))
	subs := make([]func(Snapshot), 0, len(keys))
	for _, k := range keys {
		subs = append(subs, s.subs[k])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// Hydrate restores the session from the persisted token. Without a token
// the session becomes anonymous immediately; otherwise the service is asked
// who the token belongs to and any failure clears the token.
func (s *Session) Hydrate(ctx context.Context) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
	}
	if token == "" {
		s.set(StateAnonymous, nil)
		return
	}

	s.set(StateHydrating, nil)

	res, err := s.api.Me(ctx)
	if err == nil && (res == nil || !res.Success || res.User == nil) {
		err = ErrRejected
	}
	if err != nil {
		s.log.Info(ctx, "persisted token rejected", "error", err)
		if cerr := s.tokens.Clear(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Error(ctx, "failed to clear token", "error", cerr)
		}
		s.set(StateAnonymous, nil)
		return
	}

	s.log.Debug(ctx, "session restored", "user", res.User.Email)
	s.set(StateAuthenticated, res.User)
}

// Login authenticates and persists the returned token. On failure the state
// is left as it was and the server's message (or "Login failed") is toasted.
func (s *Session) Login(ctx context.Context, email, password string) error {
	res, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: password})
	return s.signedIn(ctx, res, err, MsgLoginOK, MsgLoginFail)
}

// Register creates an account and signs in with it.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	res, err := s.api.Register(ctx, models.RegisterRequest{Name: name, Email: email, Password: password})
	return s.signedIn(ctx, res, err, MsgRegisterOK, MsgRegisterFail)
}

func (s *Session) signedIn(ctx context.Context, res *models.AuthResponse, err error, okMsg, failMsg string) error {
	if err == nil {
		err = rejected(res == nil || !res.Success || res.Token == "" || res.User == nil, resMessage(res))
	}
	if err == nil {
		if serr := s.tokens.Save(ctx, res.Token); serr != nil {
			s.log.Error(ctx, "failed to persist token", "error", serr)
			err = fmt.Errorf("persist token: %w", serr)
		}
	}
	if err != nil {
		s.toast.Error(message(err, failMsg))
		return err
	}

	s.log.Info(ctx, "signed in", "user", res.User.Email)
	s.set(StateAuthenticated, res.User)
	s.toast.Success(okMsg)
	return nil
}

// Logout ends the session. The remote call is best effort; the local token
// and user are always cleared.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Debug(ctx, "logout call failed", "error", err)
	}
	if err := s.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
		s.log.Error(ctx, "failed to clear token", "error", err)
	}
	s.set(StateAnonymous, nil)
	s.toast.Success(MsgLogoutOK)
}

// UpdateProfile changes name and/or email of the current user.
func (s *Session) UpdateProfile(ctx context.Context, req models.ProfileUpdate) error {
	res, err := s.api.UpdateProfile(ctx, req)
	if err == nil {
		err = rejected(res == nil || !res.Success || res.User == nil, userMessage(res))
	}
	if err != nil {
		s.toast.Error(message(err, MsgProfileFail))
		return err
	}
	s.set(StateAuthenticated, res.User)
	s.toast.Success(MsgProfileOK)
	return nil
}

// UpdatePassword changes the password and stores the rotated token.
func (s *Session) UpdatePassword(ctx context.Context, current, next string) error {
	res, err := s.api.UpdatePassword(ctx, models.PasswordUpdate{CurrentPassword: current, NewPassword: next})
	if err == nil {
		err = rejected(res == nil || !res.Success, resMessage(res))
	}
	if err == nil && res.Token != "" {
		if serr := s.tokens.Save(ctx, res.Token); serr != nil {
			err = fmt.Errorf("persist token: %w", serr)
		}
	}
	if err != nil {
		s.toast.Error(message(err, MsgPasswordFail))
		return err
	}

	user := res.User
	if user == nil {
		user = s.User()
	}
	s.set(StateAuthenticated, user)
	s.toast.Success(MsgPasswordOK)
	return nil
}

// Expire drops the user after the transport saw a 401. The token has
// already been cleared by then.
func (s *Session) Expire() {
	s.mu.Lock()
	unchanged := s.state == StateAnonymous && s.user == nil
	s.mu.Unlock()
	if unchanged {
		return
	}
	s.set(StateAnonymous, nil)
}

// rejectedError carries the message of a 2xx reply without success.
type rejectedError struct{ msg string }

func (e *rejectedError) Error() string {
	if e.msg == "" {
		return ErrRejected.Error()
	}
	return e.msg
}

func (e *rejectedError) Unwrap() error { return ErrRejected }

func rejected(cond bool, msg string) error {
	if !cond {
		return nil
	}
	return &rejectedError{msg: msg}
}

func resMessage(res *models.AuthResponse) string {
	if res == nil {
		return ""
	}
	return res.Message
}

func userMessage(res *models.UserResponse) string {
	if res == nil {
		return ""
	}
	return res.Message
}

// message picks the text to toast for err.
func message(err error, fallback string) string {
	var re *rejectedError
	if errors.As(err, &re) && re.msg != "" {
		return re.msg
	}
	return client.Message(err, fallback)
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/pdfnotes/internal/client/client"
	"github.com/dmitrijs2005/pdfnotes/internal/client/models"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pdfnotes/internal/client/repositories/tokens"
)

// ---- fakes ----

type fakeAPI struct {
	LoginRet    *models.AuthResponse
	LoginErr    error
	RegisterRet *models.AuthResponse
	RegisterErr error
	LogoutErr   error
	MeRet       *models.UserResponse
	MeErr       error
	ProfileRet  *models.UserResponse
	ProfileErr  error
	PasswordRet *models.AuthResponse
	PasswordErr error

	LastLogin    models.LoginRequest
	LastRegister models.RegisterRequest
	LastProfile  models.ProfileUpdate
	LastPassword models.PasswordUpdate
	LogoutCalls  int
	MeCalls      int
}

func (f *fakeAPI) Register(_ context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAPI) Login(_ context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.LastLogin = req
	return f.LoginRet, f.LoginErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeAPI) Me(context.Context) (*models.UserResponse, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeAPI) UpdateProfile(_ context.Context, req models.ProfileUpdate) (*models.UserResponse, error) {
	f.LastProfile = req
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeAPI) UpdatePassword(_ context.Context, req models.PasswordUpdate) (*models.AuthResponse, error) {
	f.LastPassword = req
	return f.PasswordRet, f.PasswordErr
}

type fakeToaster struct {
	Successes []string
	Errors    []string
}

func (f *fakeToaster) Success(msg string) { f.Successes = append(f.Successes, msg) }
func (f *fakeToaster) Error(msg string)   { f.Errors = append(f.Errors, msg) }

type fixture struct {
	api    *fakeAPI
	tokens *tokens.Store
	toast  *fakeToaster
	s      *Session
	seen   []Snapshot
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		api:    &fakeAPI{},
		tokens: tokens.NewStore(metadata.NewMemoryRepository()),
		toast:  &fakeToaster{},
	}
	f.s = New(f.api, f.tokens, f.toast, nil)
	f.s.Subscribe(func(s Snapshot) { f.seen = append(f.seen, s) })
	return f
}

func (f *fixture) token(t *testing.T) string {
	t.Helper()
	tok, err := f.tokens.Token(context.Background())
	require.NoError(t, err)
	return tok
}

var ann = &models.User{ID: "u1", Name: "Ann", Email: "a@b.com"}

// ---- hydrate ----

func TestHydrate_NoTokenIsAnonymousWithoutCall(t *testing.T) {
	f := setup(t)
	assert.Equal(t, StateUninitialized, f.s.State())
	assert.True(t, f.s.Snapshot().Loading())

	f.s.Hydrate(context.Background())

	assert.Equal(t, StateAnonymous, f.s.State())
	assert.Zero(t, f.api.MeCalls)
	require.Len(t, f.seen, 1)
	assert.False(t, f.seen[0].Loading())
}

func TestHydrate_ValidToken(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.tokens.Save(context.Background(), "tok"))
	f.api.MeRet = &models.UserResponse{Success: true, User: ann}

	f.s.Hydrate(context.Background())

	assert.Equal(t, StateAuthenticated, f.s.State())
	assert.Equal(t, "Ann", f.s.User().Name)
	require.Len(t, f.seen, 2)
	assert.Equal(t, StateHydrating, f.seen[0].State)
	assert.True(t, f.seen[0].Loading())
	assert.Equal(t, StateAuthenticated, f.seen[1].State)
	assert.Equal(t, "tok", f.token(t))
}

func TestHydrate_RejectedTokenIsCleared(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.tokens.Save(context.Background(), "stale"))
	f.api.MeErr = &client.APIError{Status: 401, Message: "Not authorized"}

	f.s.Hydrate(context.Background())

	assert.Equal(t, StateAnonymous, f.s.State())
	assert.Nil(t, f.s.User())
	assert.Empty(t, f.token(t))
	assert.Empty(t, f.toast.Errors, "hydration failures are silent")
}

func TestHydrate_SuccessFalseIsFailure(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.tokens.Save(context.Background(), "tok"))
	f.api.MeRet = &models.UserResponse{Success: false}

	f.s.Hydrate(context.Background())

	assert.Equal(t, StateAnonymous, f.s.State())
	assert.Empty(t, f.token(t))
}

// ---- login / register ----

func TestLogin_Success(t *testing.T) {
	f := setup(t)
	f.s.Hydrate(context.Background())
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "new-token", User: ann}

	err := f.s.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, models.LoginRequest{Email: "a@b.com", Password: "secret"}, f.api.LastLogin)
	assert.Equal(t, "new-token", f.token(t))
	assert.Equal(t, StateAuthenticated, f.s.State())
	assert.Equal(t, []string{"Login successful!"}, f.toast.Successes)
	assert.True(t, f.seen[len(f.seen)-1].Authenticated())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := setup(t)
	f.s.Hydrate(context.Background())
	f.api.LoginErr = &client.APIError{Status: 401, Message: "Invalid credentials"}
	before := len(f.seen)

	err := f.s.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	assert.Equal(t, []string{"Invalid credentials"}, f.toast.Errors)
	assert.Equal(t, StateAnonymous, f.s.State())
	assert.Empty(t, f.token(t))
	assert.Len(t, f.seen, before, "no transition on failure")
}

func TestLogin_TransportFailureUsesFallback(t *testing.T) {
	f := setup(t)
	f.api.LoginErr = client.ErrUnavailable

	err := f.s.Login(context.Background(), "a@b.com", "x")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, []string{"Login failed"}, f.toast.Errors)
}

func TestLogin_SuccessFalse(t *testing.T) {
	f := setup(t)
	f.api.LoginRet = &models.AuthResponse{Success: false}

	err := f.s.Login(context.Background(), "a@b.com", "x")
	require.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, []string{"Login failed"}, f.toast.Errors)
	assert.Nil(t, f.s.User())

	f.api.LoginRet = &models.AuthResponse{Success: false, Message: "Account locked"}
	_ = f.s.Login(context.Background(), "a@b.com", "x")
	assert.Equal(t, "Account locked", f.toast.Errors[1])
}

func TestRegister_SuccessAndFailure(t *testing.T) {
	f := setup(t)
	f.api.RegisterErr = &client.APIError{Status: 400}

	require.Error(t, f.s.Register(context.Background(), "Ann", "a@b.com", "secret"))
	assert.Equal(t, []string{"Registration failed"}, f.toast.Errors)

	f.api.RegisterErr = nil
	f.api.RegisterRet = &models.AuthResponse{Success: true, Token: "t", User: ann}
	require.NoError(t, f.s.Register(context.Background(), "Ann", "a@b.com", "secret"))

	assert.Equal(t, "Ann", f.api.LastRegister.Name)
	assert.Equal(t, []string{"Account created successfully!"}, f.toast.Successes)
	assert.Equal(t, "t", f.token(t))
}

// ---- logout / expire ----

func TestLogout_AlwaysClears(t *testing.T) {
	f := setup(t)
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "t", User: ann}
	require.NoError(t, f.s.Login(context.Background(), "a@b.com", "x"))
	f.api.LogoutErr = errors.New("network down")

	f.s.Logout(context.Background())

	assert.Equal(t, 1, f.api.LogoutCalls)
	assert.Empty(t, f.token(t))
	assert.Equal(t, StateAnonymous, f.s.State())
	assert.Equal(t, "Logged out successfully", f.toast.Successes[len(f.toast.Successes)-1])
}

func TestExpire(t *testing.T) {
	f := setup(t)
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "t", User: ann}
	require.NoError(t, f.s.Login(context.Background(), "a@b.com", "x"))
	n := len(f.seen)

	f.s.Expire()
	assert.Nil(t, f.s.User())
	assert.Len(t, f.seen, n+1)

	f.s.Expire()
	assert.Len(t, f.seen, n+1, "expiring an anonymous session does not notify")
}

// ---- profile / password ----

func TestUpdateProfile(t *testing.T) {
	f := setup(t)
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "t", User: ann}
	require.NoError(t, f.s.Login(context.Background(), "a@b.com", "x"))

	f.api.ProfileErr = &client.APIError{Status: 400, Message: "Email already in use"}
	require.Error(t, f.s.UpdateProfile(context.Background(), models.ProfileUpdate{Email: "c@d.com"}))
	assert.Equal(t, "Email already in use", f.toast.Errors[0])
	assert.Equal(t, "a@b.com", f.s.User().Email)

	f.api.ProfileErr = nil
	f.api.ProfileRet = &models.UserResponse{Success: true, User: &models.User{ID: "u1", Name: "Annie", Email: "a@b.com"}}
	require.NoError(t, f.s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "Annie"}))
	assert.Equal(t, "Annie", f.s.User().Name)
	assert.Equal(t, "Profile updated successfully!", f.toast.Successes[len(f.toast.Successes)-1])

	f.api.ProfileRet = &models.UserResponse{Success: false}
	require.Error(t, f.s.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "X"}))
	assert.Equal(t, "Failed to update profile", f.toast.Errors[len(f.toast.Errors)-1])
}

func TestUpdatePassword_RotatesToken(t *testing.T) {
	f := setup(t)
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "old", User: ann}
	require.NoError(t, f.s.Login(context.Background(), "a@b.com", "x"))

	f.api.PasswordErr = client.ErrUnavailable
	require.Error(t, f.s.UpdatePassword(context.Background(), "x", "y"))
	assert.Equal(t, "Failed to update password", f.toast.Errors[0])
	assert.Equal(t, "old", f.token(t))

	f.api.PasswordErr = nil
	f.api.PasswordRet = &models.AuthResponse{Success: true, Token: "rotated", User: ann}
	require.NoError(t, f.s.UpdatePassword(context.Background(), "x", "y"))
	assert.Equal(t, models.PasswordUpdate{CurrentPassword: "x", NewPassword: "y"}, f.api.LastPassword)
	assert.Equal(t, "rotated", f.token(t))
	assert.Equal(t, "Password updated successfully!", f.toast.Successes[len(f.toast.Successes)-1])
}

// ---- subscribers ----

func TestSubscribe_Unsubscribe(t *testing.T) {
	f := setup(t)
	var calls int
	cancel := f.s.Subscribe(func(Snapshot) { calls++ })

	f.s.Hydrate(context.Background())
	cancel()
	f.s.Expire()
	f.api.LoginRet = &models.AuthResponse{Success: true, Token: "t", User: ann}
	require.NoError(t, f.s.Login(context.Background(), "a@b.com", "x"))

	assert.Equal(t, 1, calls)
}

func TestSubscriber_MayReadSession(t *testing.T) {
	f := setup(t)
	var state State
	f.s.Subscribe(func(Snapshot) { state = f.s.State() })

	f.s.Hydrate(context.Background())
	assert.Equal(t, StateAnonymous, state, "lock is released before notifying")
}

// ---- expiry ----

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(tok)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("opaque-token")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)

	f := setup(t)
	require.NoError(t, f.tokens.Save(context.Background(), tok))
	got, ok = f.s.Expiry(context.Background())
	require.True(t, ok)
	assert.True(t, exp.Equal(got))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "hydrating", StateHydrating.String())
	assert.Equal(t, "unknown", State(42).String())
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCreds struct {
	creds models.Credentials
	err   error
}

func (s *staticCreds) Load(context.Context) (models.Credentials, error) { return s.creds, s.err }

func newTestClient(t *testing.T, api *testutil.FakeAPI, creds *staticCreds) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(api.URL, creds, WithHTTPClient(api.Client()), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

// loggedIn prepares an admin account and credentials the way Login would.
func loggedIn(api *testutil.FakeAPI) *staticCreds {
	id := api.AddAccount("admin", "secret")
	return &staticCreds{creds: models.Credentials{
		Token: api.Token(id, "admin"),
		Basic: models.BasicCredential("admin", "secret"),
	}}
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.org", nil)
	require.Error(t, err)
	_, err = NewHTTPClient("://", nil)
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	id := api.AddAccount("admin", "secret")
	c := newTestClient(t, api, &staticCreds{})

	res, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.ID("1"), res.UserID)
	assert.Equal(t, 1, id)
	assert.Empty(t, api.LastAuthorization(testutil.RouteLogin), "login is unauthenticated")

	_, err = c.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", MessageOr(err, "fallback"))
}

func TestSignup_Conflict(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c := newTestClient(t, api, &staticCreds{})

	require.NoError(t, c.Signup(context.Background(), "ann", "secret1"))

	err := c.Signup(context.Background(), "ann", "secret1")
	require.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Username already exists", apiErr.Message)
}

func TestSearch_UsesBasicAuth(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	creds := loggedIn(api)
	api.AddUser("ann", "Ann", "Lee", "ann@example.org", "pw")
	api.AddUser("bob", "Bob", "Leeds", "bob@example.org", "pw")
	c := newTestClient(t, api, creds)

	users, err := c.Search(context.Background(), models.SearchQuery{Field: models.FieldLastName, Value: "lee"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann", users[0].Username)
	assert.Equal(t, "Lee", users[0].LastName)

	assert.Equal(t, "Basic "+creds.creds.Basic, api.LastAuthorization(testutil.RouteSearch))
	assert.Equal(t, map[string]any{"lastName": "lee"}, api.LastBody(testutil.RouteSearch))
}

func TestCreateUpdateDelete(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	creds := loggedIn(api)
	c := newTestClient(t, api, creds)
	ctx := context.Background()

	require.NoError(t, c.CreateUser(ctx, models.NewUser{
		Username: "ann", FirstName: "Ann", LastName: "Lee", Email: "ann@example.org", Password: "longenough1",
	}))
	assert.Equal(t, "Bearer "+creds.creds.Token, api.LastAuthorization(testutil.RouteCreate))

	users, err := c.Search(ctx, models.SearchQuery{Field: models.FieldUsername, Value: "ann"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	require.NoError(t, c.UpdateUser(ctx, id, models.UserUpdate{FirstName: "Anna", LastName: "Lee", Email: "anna@example.org"}))
	assert.Equal(t, "Bearer "+creds.creds.Token, api.LastAuthorization(testutil.RouteUpdate))
	assert.NotContains(t, api.LastBody(testutil.RouteUpdate), "username")

	require.NoError(t, c.DeleteUser(ctx, id))
	assert.Equal(t, "Basic "+creds.creds.Basic, api.LastAuthorization(testutil.RouteDelete))

	err = c.DeleteUser(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User not found", MessageOr(err, "Failed to delete user"))
}

func TestCreateUser_MessageField(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	creds := loggedIn(api)
	c := newTestClient(t, api, creds)

	err := c.CreateUser(context.Background(), models.NewUser{Username: "admin"})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Username already taken", MessageOr(err, "Failed to add user"))
}

func TestAuthenticatedCalls_WithoutSession(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c := newTestClient(t, api, &staticCreds{})
	ctx := context.Background()

	_, err := c.Search(ctx, models.SearchQuery{Field: models.FieldEmail})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, common.ErrNoSession)

	err = c.CreateUser(ctx, models.NewUser{})
	require.ErrorIs(t, err, common.ErrNoSession)

	assert.Zero(t, api.Calls(testutil.RouteSearch), "no request without credentials")
	assert.Zero(t, api.Calls(testutil.RouteCreate))
}

func TestCredentialSourceError(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c := newTestClient(t, api, &staticCreds{err: errors.New("db locked")})

	err := c.DeleteUser(context.Background(), "1")
	require.ErrorContains(t, err, "db locked")
}

func TestServerMessageFallbacks(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	creds := loggedIn(api)
	c := newTestClient(t, api, creds)

	api.FailNext(testutil.RouteSearch, http.StatusInternalServerError, nil)
	_, err := c.Search(context.Background(), models.SearchQuery{Field: models.FieldEmail})
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch users", MessageOr(err, "Failed to fetch users"))
	assert.Contains(t, err.Error(), "api error 500")

	api.FailNext(testutil.RouteSearch, http.StatusServiceUnavailable, map[string]string{"error": "maintenance"})
	_, err = c.Search(context.Background(), models.SearchQuery{Field: models.FieldEmail})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "maintenance", MessageOr(err, "x"))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, &staticCreds{})
	require.NoError(t, err)

	err = c.Signup(context.Background(), "ann", "pw")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRequestID_IsSent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(common.RequestIDHeaderName)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL, &staticCreds{})
	require.NoError(t, err)
	require.NoError(t, c.Signup(context.Background(), "ann", "pw"))
	assert.Len(t, got, 36)
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrUnavailable},
		{http.StatusGatewayTimeout, ErrUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, &APIError{Status: tt.status}, tt.want, tt.status)
	}
	assert.Nil(t, (&APIError{Status: http.StatusBadRequest}).Unwrap())
	assert.Equal(t, "api error 400: Bad Request", (&APIError{Status: 400}).Error())
}

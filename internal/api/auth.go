package api

import (
	"context"
	"net/http"

	"fraudwatch-client/internal/domain"
	"fraudwatch-client/internal/observability"
)

// loginRequest is the credentials payload for POST /auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. Validation faults (422-class) are surfaced
// verbatim to the caller; the session store is not touched.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, http.MethodPost, "/auth/register", reg, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login exchanges credentials for a bearer token and stores it. The user
// identity is not known yet; fetch it with CurrentUser.
//
// A 401 here is a local credential fault: no prior session existed, so
// the session guard performs no teardown and no broadcast. Callers should
// render it as "invalid credentials".
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Token, error) {
	var token domain.Token
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &token); err != nil {
		return nil, err
	}

	c.store.Set(token.AccessToken, nil)
	observability.RecordLogin()
	return &token, nil
}

// Refresh requests a new token for the current session and replaces the
// stored one. A 401 rides the normal mid-session teardown path.
func (c *Client) Refresh(ctx context.Context) (*domain.Token, error) {
	var token domain.Token
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &token); err != nil {
		return nil, err
	}

	snap := c.store.Get()
	c.store.Set(token.AccessToken, snap.User)
	return &token, nil
}

// Logout clears the session store and broadcasts session-expired, so
// listeners react the same way whether logout was user-initiated or
// forced by the server. No request is issued.
func (c *Client) Logout() {
	c.store.Clear()
	c.bus.Publish()
}

// CurrentUser fetches the profile for the current token and caches it in
// the session store. Callers should treat a failure as an invalid session.
func (c *Client) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}

	c.store.SetUser(&profile)
	return &profile, nil
}

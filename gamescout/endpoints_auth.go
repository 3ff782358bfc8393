package gamescout

import "context"

// LoginParams : params for Login
type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse : response for Login and Signup
type AuthResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// Login exchanges a username and password for an access token.
func (c *Client) Login(ctx context.Context, params LoginParams) (*AuthResponse, error) {
	q := NewQuery(c, "/auth/login")
	r := &AuthResponse{}
	return r, q.Post(ctx, params, r)
}

// SignupParams : params for Signup
type SignupParams struct {
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	FavoriteGenres    []string `json:"favorite_genres"`
	FavoritePlatforms []string `json:"favorite_platforms"`
}

// Signup creates an account and logs into it.
func (c *Client) Signup(ctx context.Context, params SignupParams) (*AuthResponse, error) {
	q := NewQuery(c, "/auth/signup")
	r := &AuthResponse{}
	return r, q.Post(ctx, params, r)
}

// GetMe returns the user the current credentials belong to.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	q := NewQuery(c, "/auth/me")
	r := &User{}
	return r, q.Get(ctx, r)
}

// UpdatePreferencesParams : params for UpdatePreferences
type UpdatePreferencesParams struct {
	FavoriteGenres    []string `json:"favorite_genres"`
	FavoritePlatforms []string `json:"favorite_platforms"`
}

// UpdatePreferencesResponse : response for UpdatePreferences
type UpdatePreferencesResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// UpdatePreferences replaces the user's favorite genres and platforms.
func (c *Client) UpdatePreferences(ctx context.Context, params UpdatePreferencesParams) (*UpdatePreferencesResponse, error) {
	q := NewQuery(c, "/auth/preferences")
	r := &UpdatePreferencesResponse{}
	return r, q.Patch(ctx, params, r)
}

// Package session holds who is logged in. There is a single Store per
// process; every change to the identity goes through its methods.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/gamescout/scout/gamescout"
	"github.com/golang-jwt/jwt/v5"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// PostUpdateHook runs after preferences were saved.
type PostUpdateHook func(ctx context.Context) error

type Store struct {
	client   *gamescout.Client
	storage  Storage
	consumer *state.Consumer

	mu    sync.Mutex
	token string
	user  *gamescout.User
}

// NewStore returns a logged-out store. Logging in installs the
// token on client.
func NewStore(client *gamescout.Client, storage Storage, consumer *state.Consumer) *Store {
	return &Store{
		client:   client,
		storage:  storage,
		consumer: consumer,
	}
}

// Restore picks up the session persisted by a previous login.
// A session whose token has expired is discarded.
func (s *Store) Restore(ctx context.Context) error {
	token, user, err := s.storage.Load(ctx)
	if err != nil {
		return errors.WithMessage(err, "loading stored session")
	}

	if user == nil {
		s.consumer.Debugf("No stored session")
		return nil
	}

	if tokenExpired(token) {
		s.consumer.Infof("Stored session for %s has expired", user.Username)
		err := s.storage.Clear(ctx)
		if err != nil {
			return errors.WithMessage(err, "clearing expired session")
		}
		return nil
	}

	s.install(token, user)
	s.consumer.Debugf("Restored session for %s", user.Username)
	return nil
}

func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		// not something we can inspect, let the server judge it
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}

// User returns a copy of the current identity, nil when logged out.
func (s *Store) User() *gamescout.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	copied := *s.user
	copied.FavoriteGenres = append([]string{}, s.user.FavoriteGenres...)
	copied.FavoritePlatforms = append([]string{}, s.user.FavoritePlatforms...)
	return &copied
}

func (s *Store) LoggedIn() bool {
	return s.User() != nil
}

func (s *Store) install(token string, user *gamescout.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	s.client.SetKey(token)
}

// Login exchanges credentials for a token, then persists the token
// and identity together.
func (s *Store) Login(ctx context.Context, username string, password string) (*gamescout.User, error) {
	err := validateLogin(username, password)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Login(ctx, gamescout.LoginParams{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, gamescout.NewFailure(err, LoginFailed)
	}

	return s.establish(ctx, res, LoginFailed)
}

// Signup validates the form locally, and only then creates the
// account. On success the new user is logged in.
func (s *Store) Signup(ctx context.Context, form SignupForm) (*gamescout.User, error) {
	err := form.Validate()
	if err != nil {
		return nil, err
	}

	genres := form.FavoriteGenres
	if genres == nil {
		genres = []string{}
	}
	platforms := form.FavoritePlatforms
	if platforms == nil {
		platforms = []string{}
	}

	res, err := s.client.Signup(ctx, gamescout.SignupParams{
		Username:          form.Username,
		Email:             form.Email,
		Password:          form.Password,
		FavoriteGenres:    genres,
		FavoritePlatforms: platforms,
	})
	if err != nil {
		return nil, gamescout.NewFailure(err, SignupFailed)
	}

	return s.establish(ctx, res, SignupFailed)
}

func (s *Store) establish(ctx context.Context, res *gamescout.AuthResponse, fallback string) (*gamescout.User, error) {
	if res.AccessToken == "" || res.User == nil {
		return nil, &gamescout.Failure{Message: fallback, Err: errors.New("server sent no token or no user")}
	}

	err := s.storage.Save(ctx, res.AccessToken, res.User)
	if err != nil {
		return nil, errors.WithMessage(err, "persisting session")
	}

	s.install(res.AccessToken, res.User)
	s.consumer.Infof("Logged in as %s", res.User.Username)
	return s.User(), nil
}

// Logout forgets the token and the identity together.
func (s *Store) Logout(ctx context.Context) error {
	err := s.storage.Clear(ctx)
	if err != nil {
		return errors.WithMessage(err, "clearing stored session")
	}

	s.install("", nil)
	return nil
}

// Refresh replaces the identity with the server's view of it.
func (s *Store) Refresh(ctx context.Context) (*gamescout.User, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	user, err := s.client.GetMe(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = s.storage.SaveUser(ctx, user)
	if err != nil {
		return nil, errors.WithMessage(err, "persisting identity")
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return s.User(), nil
}

// UpdatePreferences saves favorite genres and platforms, capped to
// MaxGenres and MaxPlatforms. The identity only changes once the server
// confirmed, and hook runs after that.
func (s *Store) UpdatePreferences(ctx context.Context, genres []string, platforms []string, hook PostUpdateHook) (*gamescout.User, error) {
	current := s.User()
	if current == nil {
		return nil, ErrNotLoggedIn
	}

	if len(genres) > MaxGenres {
		s.consumer.Warnf("Only keeping the first %d genres", MaxGenres)
	}
	if len(platforms) > MaxPlatforms {
		s.consumer.Warnf("Only keeping the first %d platform", MaxPlatforms)
	}
	genres = CapGenres(genres)
	platforms = CapPlatforms(platforms)

	_, err := s.client.UpdatePreferences(ctx, gamescout.UpdatePreferencesParams{
		FavoriteGenres:    genres,
		FavoritePlatforms: platforms,
	})
	if err != nil {
		return nil, gamescout.NewFailure(err, UpdateFailed)
	}

	updated := *current
	updated.FavoriteGenres = genres
	updated.FavoritePlatforms = platforms

	err = s.storage.SaveUser(ctx, &updated)
	if err != nil {
		return nil, errors.WithMessage(err, "persisting preferences")
	}

	s.mu.Lock()
	s.user = &updated
	s.mu.Unlock()

	if hook != nil {
		err := hook(ctx)
		if err != nil {
			return s.User(), errors.WithMessage(err, "after updating preferences")
		}
	}
	return s.User(), nil
}

// Adopt uses a token obtained elsewhere, such as the environment. The
// identity is fetched from the server and nothing is persisted.
func (s *Store) Adopt(ctx context.Context, token string) (*gamescout.User, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	if tokenExpired(token) {
		return nil, errors.New("Provided token has expired")
	}

	s.client.SetKey(token)
	user, err := s.client.GetMe(ctx)
	if err != nil {
		s.client.SetKey("")
		return nil, gamescout.NewFailure(err, LoginFailed)
	}

	s.install(token, user)
	s.consumer.Debugf("Using provided token for %s", user.Username)
	return s.User(), nil
}

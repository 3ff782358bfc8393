// Package scouttest runs an in-process GameScout backend for tests.
// It implements the whole API surface the client uses, issues real
// JWT access tokens, and lets tests inject failures or hold requests
// in flight.
package scouttest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gamescout/scout/gamescout"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type user struct {
	gamescout.User
	password string
}

type failure struct {
	status  int
	message string
	// 0 means until Recover is called
	times int
}

// Hold keeps one request in flight until released.
type Hold struct {
	arrived chan struct{}
	release chan struct{}
	once    sync.Once
}

// Arrived is closed once the held request reached the server.
func (h *Hold) Arrived() <-chan struct{} {
	return h.arrived
}

// Release lets the held request proceed.
func (h *Hold) Release() {
	h.once.Do(func() {
		close(h.release)
	})
}

type Server struct {
	*httptest.Server

	t      testing.TB
	secret []byte

	mu              sync.Mutex
	users           map[int64]*user
	nextUserID      int64
	catalog         []*gamescout.Game
	collections     map[int64][]*gamescout.WishlistGame
	nextEntryID     int64
	recommendations *gamescout.GetRecommendationsResponse
	failures        map[string]*failure
	holds           map[string][]*Hold
	requests        []string
}

// NewServer starts a backend serving DefaultCatalog. It is closed
// when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		t:           t,
		secret:      []byte("scouttest-secret"),
		users:       make(map[int64]*user),
		catalog:     DefaultCatalog(),
		collections: make(map[int64][]*gamescout.WishlistGame),
		failures:    make(map[string]*failure),
		holds:       make(map[string][]*Hold),
	}

	r := gin.New()
	r.Use(s.intercept)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/signup", s.signup)
	auth.GET("/me", s.requireAuth, s.me)
	auth.PATCH("/preferences", s.requireAuth, s.updatePreferences)

	games := api.Group("/games")
	games.GET("/genres", s.listGenres)
	games.GET("/platforms", s.listPlatforms)
	games.GET("/search", s.requireAuth, s.searchGames)
	games.GET("/recommendations", s.requireAuth, s.recommend)
	games.GET("/:id", s.requireAuth, s.gameDetails)
	games.GET("/:id/screenshots", s.requireAuth, s.gameScreenshots)

	wishlist := api.Group("/wishlist", s.requireAuth)
	wishlist.GET("", s.listWishlist)
	wishlist.POST("", s.addToWishlist)
	wishlist.GET("/check/:rawg_id", s.checkWishlist)
	wishlist.GET("/:id", s.getWishlistGame)
	wishlist.PATCH("/:id", s.updateWishlistGame)
	wishlist.DELETE("/:id", s.removeWishlistGame)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Client returns an API client pointed at this server, without retries.
func (s *Server) Client(token string) *gamescout.Client {
	c := gamescout.ClientWithKey(token)
	c.SetServer(s.URL)
	c.RetryPatterns = nil
	return c
}

func routeKey(method string, route string) string {
	return method + " " + route
}

// Fail makes every request to route fail with the given status. An
// empty message produces a body without an `error` field.
// Routes are written the way they're registered, e.g. "/api/wishlist/:id".
func (s *Server) Fail(method string, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, route)] = &failure{status: status, message: message}
}

// FailOnce is like Fail but only affects the next request.
func (s *Server) FailOnce(method string, route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[routeKey(method, route)] = &failure{status: status, message: message, times: 1}
}

// Recover undoes Fail.
func (s *Server) Recover(method string, route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, routeKey(method, route))
}

// HoldNext holds the next request to route until the returned Hold is
// released. Release it before the test ends.
func (s *Server) HoldNext(method string, route string) *Hold {
	h := &Hold{
		arrived: make(chan struct{}),
		release: make(chan struct{}),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := routeKey(method, route)
	s.holds[key] = append(s.holds[key], h)
	return h
}

// Requests returns every request received so far, as "METHOD /route".
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.requests...)
}

// CountRequests counts requests received for one route.
func (s *Server) CountRequests(method string, route string) int {
	key := routeKey(method, route)
	count := 0
	for _, r := range s.Requests() {
		if r == key {
			count++
		}
	}
	return count
}

func (s *Server) intercept(c *gin.Context) {
	key := routeKey(c.Request.Method, c.FullPath())

	s.mu.Lock()
	s.requests = append(s.requests, key)
	f := s.failures[key]
	if f != nil && f.times > 0 {
		f.times--
		if f.times == 0 {
			delete(s.failures, key)
		}
	}
	var h *Hold
	if hs := s.holds[key]; len(hs) > 0 {
		h = hs[0]
		s.holds[key] = hs[1:]
	}
	s.mu.Unlock()

	if h != nil {
		close(h.arrived)
		<-h.release
	}

	if f != nil {
		body := gin.H{}
		if f.message != "" {
			body["error"] = f.message
		} else {
			body["msg"] = http.StatusText(f.status)
		}
		c.AbortWithStatusJSON(f.status, body)
		return
	}

	c.Next()
}

//-------------------------------------------------------
// users & tokens
//-------------------------------------------------------

// AddUser registers a user directly, bypassing signup.
func (s *Server) AddUser(username string, email string, password string, genres []string, platforms []string) *gamescout.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password, genres, platforms)
}

func (s *Server) addUserLocked(username string, email string, password string, genres []string, platforms []string) *gamescout.User {
	s.nextUserID++
	if genres == nil {
		genres = []string{}
	}
	if platforms == nil {
		platforms = []string{}
	}
	u := &user{
		User: gamescout.User{
			ID:                s.nextUserID,
			Username:          username,
			Email:             email,
			FavoriteGenres:    genres,
			FavoritePlatforms: platforms,
			CreatedAt:         time.Now().UTC().Format(time.RFC3339),
		},
		password: password,
	}
	s.users[u.ID] = u
	copied := u.User
	return &copied
}

// User returns a copy of a user's server-side state, nil if unknown.
func (s *Server) User(username string) *gamescout.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByNameLocked(username)
	if u == nil {
		return nil
	}
	copied := u.User
	return &copied
}

func (s *Server) userByNameLocked(username string) *user {
	for _, u := range s.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// Token issues a valid access token for a user.
func (s *Server) Token(username string) string {
	return s.tokenFor(username, time.Hour)
}

// ExpiredToken issues a token that expired an hour ago.
func (s *Server) ExpiredToken(username string) string {
	return s.tokenFor(username, -time.Hour)
}

func (s *Server) tokenFor(username string, expiresIn time.Duration) string {
	s.mu.Lock()
	u := s.userByNameLocked(username)
	s.mu.Unlock()
	if u == nil {
		s.t.Fatalf("scouttest: unknown user %q", username)
	}
	return s.issueToken(u.ID, expiresIn)
}

func (s *Server) issueToken(userID int64, expiresIn time.Duration) string {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.t.Fatalf("scouttest: signing token: %v", err)
	}
	return signed
}

const userIDKey = "scouttest.userID"

func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Missing Authorization Header"})
		return
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token has expired"})
		return
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"msg": "Invalid token subject"})
		return
	}

	s.mu.Lock()
	_, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

//-------------------------------------------------------
// auth routes
//-------------------------------------------------------

func (s *Server) login(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Username == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing username or password"})
		return
	}

	s.mu.Lock()
	u := s.userByNameLocked(body.Username)
	var res gamescout.User
	if u != nil {
		res = u.User
	}
	s.mu.Unlock()

	if u == nil || u.password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": s.issueToken(res.ID, time.Hour),
		"user":         res,
	})
}

func (s *Server) signup(c *gin.Context) {
	var body gamescout.SignupParams
	if err := c.ShouldBindJSON(&body); err != nil || body.Username == "" || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Username == body.Username {
			s.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		if u.Email == body.Email {
			s.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
	}
	created := s.addUserLocked(body.Username, body.Email, body.Password, body.FavoriteGenres, body.FavoritePlatforms)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"message":      "User created successfully",
		"access_token": s.issueToken(created.ID, time.Hour),
		"user":         created,
	})
}

func (s *Server) me(c *gin.Context) {
	s.mu.Lock()
	res := s.users[currentUserID(c)].User
	s.mu.Unlock()
	c.JSON(http.StatusOK, res)
}

func (s *Server) updatePreferences(c *gin.Context) {
	var body map[string][]string
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences"})
		return
	}

	s.mu.Lock()
	u := s.users[currentUserID(c)]
	if genres, ok := body["favorite_genres"]; ok {
		u.FavoriteGenres = genres
	}
	if platforms, ok := body["favorite_platforms"]; ok {
		u.FavoritePlatforms = platforms
	}
	res := u.User
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated successfully",
		"user":    res,
	})
}

//-------------------------------------------------------
// catalog routes
//-------------------------------------------------------

// SetCatalog replaces the served catalog.
func (s *Server) SetCatalog(games []*gamescout.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = games
}

// SetRecommendations overrides computed recommendations.
func (s *Server) SetRecommendations(res *gamescout.GetRecommendationsResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations = res
}

func (s *Server) listGenres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(knownGenres), "results": knownGenres})
}

func (s *Server) listPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(knownPlatforms), "results": knownPlatforms})
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func hasGenreSlug(g *gamescout.Game, slug string) bool {
	for _, genre := range g.Genres {
		if genre.Slug == slug {
			return true
		}
	}
	return false
}

func hasPlatformID(g *gamescout.Game, id string) bool {
	for _, p := range g.Platforms {
		if strconv.FormatInt(p.Platform.ID, 10) == id {
			return true
		}
	}
	return false
}

func matchesRelease(g *gamescout.Game, filter string, now time.Time) bool {
	released, err := time.Parse("2006-01-02", g.Released)
	if err != nil {
		return filter == "" || filter == "both"
	}
	switch filter {
	case "upcoming":
		return released.After(now)
	case "current":
		return !released.After(now) && released.After(now.AddDate(0, -6, 0))
	default:
		return true
	}
}

func (s *Server) playedIDsLocked(userID int64) map[int64]bool {
	played := make(map[int64]bool)
	for _, entry := range s.collections[userID] {
		if entry.Status == gamescout.StatusPlayed {
			played[entry.RawgID] = true
		}
	}
	return played
}

func (s *Server) searchGames(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 20)
	search := strings.ToLower(c.Query("search"))
	genre := c.Query("genres")
	platform := c.Query("platforms")
	release := c.Query("release_filter")
	now := time.Now()

	s.mu.Lock()
	played := s.playedIDsLocked(currentUserID(c))
	matches := []*gamescout.Game{}
	for _, g := range s.catalog {
		if search != "" && !strings.Contains(strings.ToLower(g.Name), search) {
			continue
		}
		if genre != "" && !hasGenreSlug(g, genre) {
			continue
		}
		if platform != "" && !hasPlatformID(g, platform) {
			continue
		}
		if !matchesRelease(g, release, now) {
			continue
		}
		matches = append(matches, g)
	}
	s.mu.Unlock()

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matches) {
		start = len(matches)
	}
	if end > len(matches) {
		end = len(matches)
	}

	results := []*gamescout.Game{}
	for _, g := range matches[start:end] {
		if !played[g.ID] {
			results = append(results, g)
		}
	}

	var next interface{}
	if end < len(matches) {
		next = fmt.Sprintf("%s/api/games/search?page=%d&page_size=%d", s.URL, page+1, pageSize)
	}
	var previous interface{}
	if page > 1 {
		previous = fmt.Sprintf("%s/api/games/search?page=%d&page_size=%d", s.URL, page-1, pageSize)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(matches),
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}

func (s *Server) findGameLocked(c *gin.Context, param string) *gamescout.Game {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		return nil
	}
	for _, g := range s.catalog {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *Server) gameDetails(c *gin.Context) {
	s.mu.Lock()
	g := s.findGameLocked(c, "id")
	s.mu.Unlock()
	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	c.JSON(http.StatusOK, gamescout.GameDetails{
		Game:           *g,
		DescriptionRaw: fmt.Sprintf("%s is a game.", g.Name),
		Website:        fmt.Sprintf("https://games.example.com/%d", g.ID),
		Playtime:       12,
		Developers:     []gamescout.Company{{ID: 1, Name: "Example Studio"}},
		Publishers:     []gamescout.Company{{ID: 2, Name: "Example Publishing"}},
	})
}

func (s *Server) gameScreenshots(c *gin.Context) {
	s.mu.Lock()
	g := s.findGameLocked(c, "id")
	s.mu.Unlock()
	if g == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	results := []*gamescout.Screenshot{}
	for i := int64(1); i <= 3; i++ {
		results = append(results, &gamescout.Screenshot{
			ID:    g.ID*10 + i,
			Image: fmt.Sprintf("https://media.example.com/screenshots/%d-%d.jpg", g.ID, i),
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(results), "results": results})
}

func sharesGenre(g *gamescout.Game, names map[string]bool) bool {
	for _, genre := range g.Genres {
		if names[strings.ToLower(genre.Name)] {
			return true
		}
	}
	return false
}

func (s *Server) recommend(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recommendations != nil {
		c.JSON(http.StatusOK, s.recommendations)
		return
	}

	userID := currentUserID(c)
	u := s.users[userID]
	played := s.playedIDsLocked(userID)

	favorites := make(map[string]bool)
	for _, g := range u.FavoriteGenres {
		favorites[strings.ToLower(g)] = true
	}
	inCollection := make(map[int64]bool)
	collectionGenres := make(map[string]bool)
	for _, entry := range s.collections[userID] {
		inCollection[entry.RawgID] = true
		for _, g := range entry.Genres {
			collectionGenres[strings.ToLower(g)] = true
		}
	}

	res := &gamescout.GetRecommendationsResponse{
		PreferenceBased: []*gamescout.Game{},
		GenreBased:      []*gamescout.Game{},
	}
	for _, g := range s.catalog {
		if played[g.ID] || g.Rating == nil || *g.Rating < 3.0 {
			continue
		}
		if len(favorites) > 0 && sharesGenre(g, favorites) && len(res.PreferenceBased) < 10 {
			res.PreferenceBased = append(res.PreferenceBased, g)
		}
		if !inCollection[g.ID] && len(collectionGenres) > 0 && sharesGenre(g, collectionGenres) && len(res.GenreBased) < 10 {
			res.GenreBased = append(res.GenreBased, g)
		}
	}
	c.JSON(http.StatusOK, res)
}

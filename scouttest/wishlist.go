package scouttest

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gamescout/scout/gamescout"
	"github.com/gin-gonic/gin"
)

var serverStatuses = map[gamescout.Status]bool{
	gamescout.StatusWishlist: true,
	gamescout.StatusPlayed:   true,
	"interested":             true,
}

// Collect puts a catalog game in a user's collection, bypassing the API.
func (s *Server) Collect(username string, g *gamescout.Game, status gamescout.Status) *gamescout.WishlistGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByNameLocked(username)
	if u == nil {
		s.t.Fatalf("scouttest: unknown user %q", username)
	}
	entry := s.insertLocked(u.ID, &gamescout.AddToWishlistParams{
		RawgID:      g.ID,
		Title:       g.Name,
		CoverImage:  g.BackgroundImage,
		Rating:      g.Rating,
		ReleaseDate: g.Released,
		Status:      status,
		Genres:      g.GenreNames(),
		Platforms:   g.PlatformNames(),
	})
	copied := *entry
	return &copied
}

// Collection returns a copy of a user's collection, most recent first.
func (s *Server) Collection(username string) []gamescout.WishlistGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByNameLocked(username)
	if u == nil {
		return nil
	}
	var res []gamescout.WishlistGame
	for _, entry := range s.collections[u.ID] {
		res = append(res, *entry)
	}
	return res
}

func (s *Server) insertLocked(userID int64, params *gamescout.AddToWishlistParams) *gamescout.WishlistGame {
	s.nextEntryID++
	genres := params.Genres
	if genres == nil {
		genres = []string{}
	}
	platforms := params.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	entry := &gamescout.WishlistGame{
		ID:          s.nextEntryID,
		UserID:      userID,
		RawgID:      params.RawgID,
		Title:       params.Title,
		CoverImage:  params.CoverImage,
		Rating:      params.Rating,
		ReleaseDate: params.ReleaseDate,
		Status:      params.Status,
		AddedAt:     time.Now().UTC().Format(time.RFC3339),
		Genres:      genres,
		Platforms:   platforms,
	}
	s.collections[userID] = append([]*gamescout.WishlistGame{entry}, s.collections[userID]...)
	return entry
}

func (s *Server) entryLocked(userID int64, id int64) *gamescout.WishlistGame {
	for _, entry := range s.collections[userID] {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

func (s *Server) entryByRawgIDLocked(userID int64, rawgID int64) *gamescout.WishlistGame {
	for _, entry := range s.collections[userID] {
		if entry.RawgID == rawgID {
			return entry
		}
	}
	return nil
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found in wishlist"})
		return 0, false
	}
	return id, true
}

func (s *Server) listWishlist(c *gin.Context) {
	s.mu.Lock()
	games := []gamescout.WishlistGame{}
	for _, entry := range s.collections[currentUserID(c)] {
		games = append(games, *entry)
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"games": games})
}

func (s *Server) getWishlistGame(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	entry := s.entryLocked(currentUserID(c), id)
	var res gamescout.WishlistGame
	if entry != nil {
		res = *entry
	}
	s.mu.Unlock()

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found in wishlist"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) checkWishlist(c *gin.Context) {
	rawgID, err := strconv.ParseInt(c.Param("rawg_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"in_wishlist": false, "game": nil})
		return
	}

	s.mu.Lock()
	entry := s.entryByRawgIDLocked(currentUserID(c), rawgID)
	var res *gamescout.WishlistGame
	if entry != nil {
		copied := *entry
		res = &copied
	}
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"in_wishlist": res != nil, "game": res})
}

func (s *Server) addToWishlist(c *gin.Context) {
	var body struct {
		RawgID      *int64           `json:"rawg_id"`
		Title       *string          `json:"title"`
		CoverImage  string           `json:"cover_image"`
		Rating      *float64         `json:"rating"`
		ReleaseDate string           `json:"release_date"`
		Status      gamescout.Status `json:"status"`
		Genres      []string         `json:"genres"`
		Platforms   []string         `json:"platforms"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.RawgID == nil || body.Title == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields (rawg_id, title)"})
		return
	}
	if body.Status == "" {
		body.Status = gamescout.StatusWishlist
	}

	userID := currentUserID(c)
	s.mu.Lock()
	if existing := s.entryByRawgIDLocked(userID, *body.RawgID); existing != nil {
		existing.Status = body.Status
		res := *existing
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Game status updated to %s", body.Status),
			"game":    res,
		})
		return
	}

	entry := s.insertLocked(userID, &gamescout.AddToWishlistParams{
		RawgID:      *body.RawgID,
		Title:       *body.Title,
		CoverImage:  body.CoverImage,
		Rating:      body.Rating,
		ReleaseDate: body.ReleaseDate,
		Status:      body.Status,
		Genres:      body.Genres,
		Platforms:   body.Platforms,
	})
	res := *entry
	s.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Game added to wishlist",
		"game":    res,
	})
}

func (s *Server) updateWishlistGame(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var body struct {
		Status gamescout.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !serverStatuses[body.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be: wishlist, played, or interested"})
		return
	}

	s.mu.Lock()
	entry := s.entryLocked(currentUserID(c), id)
	var res gamescout.WishlistGame
	if entry != nil {
		entry.Status = body.Status
		res = *entry
	}
	s.mu.Unlock()

	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found in wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Game updated successfully",
		"game":    res,
	})
}

func (s *Server) removeWishlistGame(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	s.mu.Lock()
	entries := s.collections[userID]
	found := false
	for i, entry := range entries {
		if entry.ID == id {
			s.collections[userID] = append(entries[:i:i], entries[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found in wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game removed from wishlist"})
}

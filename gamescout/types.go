package gamescout

// User is the identity the backend returns on login, signup and /auth/me.
type User struct {
	ID                int64    `json:"id"`
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	FavoriteGenres    []string `json:"favorite_genres"`
	FavoritePlatforms []string `json:"favorite_platforms"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

// Genre is a catalog genre. Filters use the slug, preferences use the name.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Platform is a catalog platform. Filters use the ID.
type Platform struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// PlatformEntry wraps a platform the way the catalog nests it in games.
type PlatformEntry struct {
	Platform Platform `json:"platform"`
}

// Game is a catalog game summary. It is never mutated locally.
type Game struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	BackgroundImage string          `json:"background_image,omitempty"`
	Rating          *float64        `json:"rating,omitempty"`
	Released        string          `json:"released,omitempty"`
	Genres          []Genre         `json:"genres"`
	Platforms       []PlatformEntry `json:"platforms"`
}

// GenreNames flattens the genre list to display names.
func (g *Game) GenreNames() []string {
	names := make([]string, 0, len(g.Genres))
	for _, genre := range g.Genres {
		names = append(names, genre.Name)
	}
	return names
}

// PlatformNames flattens the nested platform list to display names.
func (g *Game) PlatformNames() []string {
	names := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		names = append(names, p.Platform.Name)
	}
	return names
}

// Company is a developer or publisher.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameDetails is the extended view of a game shown in the detail overlay.
type GameDetails struct {
	Game
	DescriptionRaw string    `json:"description_raw,omitempty"`
	Website        string    `json:"website,omitempty"`
	Metacritic     *int64    `json:"metacritic,omitempty"`
	Playtime       int64     `json:"playtime,omitempty"`
	Developers     []Company `json:"developers"`
	Publishers     []Company `json:"publishers"`
}

// Screenshot is one media item of a game.
type Screenshot struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Status is the collection status of a saved game.
type Status string

const (
	StatusWishlist Status = "wishlist"
	StatusPlayed   Status = "played"
)

// Valid returns true for the statuses the client offers.
func (s Status) Valid() bool {
	return s == StatusWishlist || s == StatusPlayed
}

// WishlistGame is an entry of the user's collection. ID is the collection
// entry ID, RawgID the catalog ID; there is at most one entry per RawgID.
type WishlistGame struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id,omitempty"`
	RawgID      int64    `json:"rawg_id"`
	Title       string   `json:"title"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Status      Status   `json:"status"`
	AddedAt     string   `json:"added_at,omitempty"`
	Genres      []string `json:"genres"`
	Platforms   []string `json:"platforms"`
}

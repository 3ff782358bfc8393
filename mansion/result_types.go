package mansion

import "github.com/gamescout/scout/gamescout"

// SearchResult is sent once per loaded page
//
// For command `search`
type SearchResult struct {
	Type    string            `json:"type"`
	Page    int64             `json:"page"`
	Count   int64             `json:"count"`
	HasMore bool              `json:"hasMore"`
	Games   []*gamescout.Game `json:"games"`
}

// CollectionResult lists saved games, with counts per status
//
// For command `wishlist`
type CollectionResult struct {
	Type   string                    `json:"type"`
	Filter string                    `json:"filter"`
	Counts interface{}               `json:"counts"`
	Games  []*gamescout.WishlistGame `json:"games"`
}

// GameResult is the detail view of one game
//
// For command `show`
type GameResult struct {
	Type        string                  `json:"type"`
	Details     *gamescout.GameDetails  `json:"details"`
	Screenshots []*gamescout.Screenshot `json:"screenshots"`
	Status      string                  `json:"status"`
	Message     string                  `json:"message,omitempty"`
}

// RecommendationsResult holds both recommendation lists
//
// For command `recommend`
type RecommendationsResult struct {
	Type            string            `json:"type"`
	PreferenceBased []*gamescout.Game `json:"preferenceBased"`
	GenreBased      []*gamescout.Game `json:"genreBased"`
}

// UserResult is the logged-in identity
//
// For commands `login`, `signup`, `whoami`, `prefs`
type UserResult struct {
	Type string          `json:"type"`
	User *gamescout.User `json:"user"`
}

package gamescout

import "context"

// ReleaseFilter narrows search results by release date.
type ReleaseFilter string

const (
	ReleaseFilterBoth     ReleaseFilter = "both"
	ReleaseFilterUpcoming ReleaseFilter = "upcoming"
	// ReleaseFilterCurrent is games released in the last six months.
	ReleaseFilterCurrent ReleaseFilter = "current"
)

// SearchGamesParams : params for SearchGames
type SearchGamesParams struct {
	Search        string
	Genres        string
	Platforms     string
	ReleaseFilter ReleaseFilter
	Page          int64
	PageSize      int64
}

// SearchGamesResponse : response for SearchGames. Next is nil
// when there are no further pages.
type SearchGamesResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []*Game `json:"results"`
}

// SearchGames queries the catalog. Games the user already played
// are filtered out server-side.
func (c *Client) SearchGames(ctx context.Context, params SearchGamesParams) (*SearchGamesResponse, error) {
	q := NewQuery(c, "/games/search")
	q.AddStringIfNonEmpty("search", params.Search)
	q.AddStringIfNonEmpty("genres", params.Genres)
	q.AddStringIfNonEmpty("platforms", params.Platforms)
	q.AddStringIfNonEmpty("release_filter", string(params.ReleaseFilter))
	q.AddInt64IfNonZero("page", params.Page)
	q.AddInt64IfNonZero("page_size", params.PageSize)
	r := &SearchGamesResponse{}
	return r, q.Get(ctx, r)
}

// ListGenresResponse : response for ListGenres
type ListGenresResponse struct {
	Results []*Genre `json:"results"`
}

// ListGenres lists catalog genres. Doesn't require authentication.
func (c *Client) ListGenres(ctx context.Context) (*ListGenresResponse, error) {
	q := NewQuery(c, "/games/genres")
	r := &ListGenresResponse{}
	return r, q.Get(ctx, r)
}

// ListPlatformsResponse : response for ListPlatforms
type ListPlatformsResponse struct {
	Results []*Platform `json:"results"`
}

// ListPlatforms lists catalog platforms. Doesn't require authentication.
func (c *Client) ListPlatforms(ctx context.Context) (*ListPlatformsResponse, error) {
	q := NewQuery(c, "/games/platforms")
	r := &ListPlatformsResponse{}
	return r, q.Get(ctx, r)
}

// GetGame returns the extended details of a catalog game.
func (c *Client) GetGame(ctx context.Context, gameID int64) (*GameDetails, error) {
	q := NewQuery(c, "/games/%d", gameID)
	r := &GameDetails{}
	return r, q.Get(ctx, r)
}

// GetGameScreenshotsResponse : response for GetGameScreenshots
type GetGameScreenshotsResponse struct {
	Results []*Screenshot `json:"results"`
}

// GetGameScreenshots lists the screenshots of a catalog game.
func (c *Client) GetGameScreenshots(ctx context.Context, gameID int64) (*GetGameScreenshotsResponse, error) {
	q := NewQuery(c, "/games/%d/screenshots", gameID)
	r := &GetGameScreenshotsResponse{}
	return r, q.Get(ctx, r)
}

// GetRecommendationsResponse : response for GetRecommendations.
// Either list may be empty.
type GetRecommendationsResponse struct {
	PreferenceBased []*Game `json:"preference_based"`
	GenreBased      []*Game `json:"genre_based"`
}

// GetRecommendations computes recommendations from the user's
// preferences and from the genres of their collection.
func (c *Client) GetRecommendations(ctx context.Context) (*GetRecommendationsResponse, error) {
	q := NewQuery(c, "/games/recommendations")
	r := &GetRecommendationsResponse{}
	return r, q.Get(ctx, r)
}

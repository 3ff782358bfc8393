package gamescout

import "context"

// ListWishlistResponse : response for ListWishlist
type ListWishlistResponse struct {
	Games []*WishlistGame `json:"games"`
}

// ListWishlist returns the whole collection, most recently added first.
func (c *Client) ListWishlist(ctx context.Context) (*ListWishlistResponse, error) {
	q := NewQuery(c, "/wishlist")
	r := &ListWishlistResponse{}
	return r, q.Get(ctx, r)
}

// GetWishlistGame returns one collection entry by its entry ID.
func (c *Client) GetWishlistGame(ctx context.Context, id int64) (*WishlistGame, error) {
	q := NewQuery(c, "/wishlist/%d", id)
	r := &WishlistGame{}
	return r, q.Get(ctx, r)
}

// CheckWishlistResponse : response for CheckWishlist
type CheckWishlistResponse struct {
	InWishlist bool          `json:"in_wishlist"`
	Game       *WishlistGame `json:"game"`
}

// CheckWishlist tells whether a catalog game is in the collection.
func (c *Client) CheckWishlist(ctx context.Context, rawgID int64) (*CheckWishlistResponse, error) {
	q := NewQuery(c, "/wishlist/check/%d", rawgID)
	r := &CheckWishlistResponse{}
	return r, q.Get(ctx, r)
}

// AddToWishlistParams : params for AddToWishlist, the denormalized
// projection of a catalog game.
type AddToWishlistParams struct {
	RawgID      int64    `json:"rawg_id"`
	Title       string   `json:"title"`
	CoverImage  string   `json:"cover_image"`
	Rating      *float64 `json:"rating"`
	ReleaseDate string   `json:"release_date"`
	Status      Status   `json:"status"`
	Genres      []string `json:"genres"`
	Platforms   []string `json:"platforms"`
}

// WishlistGameResponse : response for AddToWishlist and UpdateWishlistGame
type WishlistGameResponse struct {
	Message string        `json:"message"`
	Game    *WishlistGame `json:"game"`
}

// AddToWishlist upserts a game: if it's already in the collection,
// only its status changes.
func (c *Client) AddToWishlist(ctx context.Context, params AddToWishlistParams) (*WishlistGameResponse, error) {
	q := NewQuery(c, "/wishlist")
	r := &WishlistGameResponse{}
	return r, q.Post(ctx, params, r)
}

type updateWishlistGameParams struct {
	Status Status `json:"status"`
}

// UpdateWishlistGame changes the status of a collection entry.
func (c *Client) UpdateWishlistGame(ctx context.Context, id int64, status Status) (*WishlistGameResponse, error) {
	q := NewQuery(c, "/wishlist/%d", id)
	r := &WishlistGameResponse{}
	return r, q.Patch(ctx, updateWishlistGameParams{Status: status}, r)
}

// RemoveFromWishlist deletes a collection entry.
func (c *Client) RemoveFromWishlist(ctx context.Context, id int64) error {
	q := NewQuery(c, "/wishlist/%d", id)
	return q.Delete(ctx, nil)
}

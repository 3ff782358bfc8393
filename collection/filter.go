package collection

import "github.com/gamescout/scout/gamescout"

// Filter selects saved games by status. FilterAll matches every game.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterWishlist Filter = Filter(gamescout.StatusWishlist)
	FilterPlayed   Filter = Filter(gamescout.StatusPlayed)
)

func (f Filter) matches(g *gamescout.WishlistGame) bool {
	return f == FilterAll || f == "" || gamescout.Status(f) == g.Status
}

// Filter returns the held games matching f, in held order.
func (c *Collection) Filter(f Filter) []*gamescout.WishlistGame {
	var res []*gamescout.WishlistGame
	for _, g := range c.Games() {
		if f.matches(g) {
			res = append(res, g)
		}
	}
	return res
}

type Counts struct {
	All      int `json:"all"`
	Wishlist int `json:"wishlist"`
	Played   int `json:"played"`
}

// Counts tallies the held games per status.
func (c *Collection) Counts() Counts {
	var counts Counts
	for _, g := range c.Games() {
		counts.All++
		switch g.Status {
		case gamescout.StatusWishlist:
			counts.Wishlist++
		case gamescout.StatusPlayed:
			counts.Played++
		}
	}
	return counts
}

package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gamescout/scout/gamescout"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func Test_Labels(t *testing.T) {
	rating := 4.25
	assert.EqualValues(t, "★ 4.2", Rating(&rating))
	assert.EqualValues(t, "-", Rating(nil))

	assert.EqualValues(t, "TBA", Release("", now))
	assert.EqualValues(t, "soon", Release("soon", now))
	assert.EqualValues(t, "2023-06-01 (1 year ago)", Release("2023-06-01", now))
	assert.Contains(t, Release("2024-09-01", now), "from now")

	assert.EqualValues(t, "1 game", Count(1, "game"))
	assert.EqualValues(t, "1,234 games", Count(1234, "game"))

	assert.EqualValues(t, "played", Status("played"))
}

func Test_Games(t *testing.T) {
	rating := 4.5
	var buf bytes.Buffer
	Games(&buf, []*gamescout.Game{
		{
			ID:       1001,
			Name:     "Celeste",
			Rating:   &rating,
			Released: "2018-01-25",
			Genres:   []gamescout.Genre{{Name: "Platformer"}, {Name: "Indie"}},
			Platforms: []gamescout.PlatformEntry{
				{Platform: gamescout.Platform{Name: "PC"}},
			},
		},
	}, now)

	out := buf.String()
	assert.Contains(t, out, "Celeste")
	assert.Contains(t, out, "1001")
	assert.Contains(t, out, "Platformer, Indie")
	assert.Contains(t, out, "★ 4.5")
}

func Test_Collection(t *testing.T) {
	var buf bytes.Buffer
	Collection(&buf, []*gamescout.WishlistGame{
		{
			ID:      7,
			RawgID:  1001,
			Title:   "Celeste",
			Status:  gamescout.StatusWishlist,
			AddedAt: "2024-05-31T12:00:00Z",
		},
	}, now)

	out := buf.String()
	assert.Contains(t, out, "Celeste (#1001)")
	assert.Contains(t, out, "wishlist")
	assert.Contains(t, out, "1 day ago")
	assert.Contains(t, out, "TBA")
}

func Test_Details(t *testing.T) {
	var buf bytes.Buffer
	Details(&buf, &gamescout.GameDetails{
		Game:           gamescout.Game{ID: 1, Name: "Portal 2"},
		DescriptionRaw: "Think with portals.",
		Developers:     []gamescout.Company{{Name: "Valve"}},
	}, []*gamescout.Screenshot{{ID: 1, Image: "https://example.com/1.jpg"}}, "none", now)

	out := buf.String()
	assert.Contains(t, out, "Portal 2")
	assert.Contains(t, out, "Developers: Valve")
	assert.Contains(t, out, "Publishers: -")
	assert.Contains(t, out, "Think with portals.")
	assert.Contains(t, out, "1 screenshot:")
	assert.Contains(t, out, "https://example.com/1.jpg")
}

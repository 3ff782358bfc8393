// Package render prints games and collections for humans.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gamescout/scout/gamescout"
	"github.com/olekukonko/tablewriter"
)

const dateLayout = "2006-01-02"

var (
	wishlistColor = color.New(color.FgYellow, color.Bold)
	playedColor   = color.New(color.FgGreen, color.Bold)
	mutedColor    = color.New(color.Faint)
)

// Status colors a collection status.
func Status(status string) string {
	switch gamescout.Status(status) {
	case gamescout.StatusWishlist:
		return wishlistColor.Sprint(status)
	case gamescout.StatusPlayed:
		return playedColor.Sprint(status)
	default:
		return mutedColor.Sprint(status)
	}
}

func Rating(rating *float64) string {
	if rating == nil || *rating == 0 {
		return "-"
	}
	return fmt.Sprintf("★ %.1f", *rating)
}

// Release shows a release date along with how far it is from now.
func Release(released string, now time.Time) string {
	if released == "" {
		return "TBA"
	}
	t, err := time.Parse(dateLayout, released)
	if err != nil {
		return released
	}
	return fmt.Sprintf("%s (%s)", released, humanize.RelTime(t, now, "ago", "from now"))
}

// Count formats a number of games.
func Count(n int64, what string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", what)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(n), what)
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

// Games prints catalog games as a table.
func Games(w io.Writer, games []*gamescout.Game, now time.Time) {
	table := newTable(w, []string{"ID", "Name", "Rating", "Released", "Genres", "Platforms"})
	for _, g := range games {
		table.Append([]string{
			fmt.Sprintf("%d", g.ID),
			g.Name,
			Rating(g.Rating),
			Release(g.Released, now),
			list(g.GenreNames()),
			list(g.PlatformNames()),
		})
	}
	table.Render()
}

// Collection prints saved games as a table. ID is the entry ID, the
// one `scout wishlist status` and `scout wishlist remove` take.
func Collection(w io.Writer, games []*gamescout.WishlistGame, now time.Time) {
	table := newTable(w, []string{"ID", "Game", "Status", "Rating", "Released", "Added"})
	for _, g := range games {
		added := "-"
		if t, err := time.Parse(time.RFC3339, g.AddedAt); err == nil {
			added = humanize.RelTime(t, now, "ago", "from now")
		}
		table.Append([]string{
			fmt.Sprintf("%d", g.ID),
			fmt.Sprintf("%s (#%d)", g.Title, g.RawgID),
			Status(string(g.Status)),
			Rating(g.Rating),
			Release(g.ReleaseDate, now),
			added,
		})
	}
	table.Render()
}

// Details prints the extended view of a game.
func Details(w io.Writer, d *gamescout.GameDetails, screenshots []*gamescout.Screenshot, status string, now time.Time) {
	fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(d.Name))
	fmt.Fprintf(w, "  Rating:     %s\n", Rating(d.Rating))
	if d.Metacritic != nil {
		fmt.Fprintf(w, "  Metacritic: %d\n", *d.Metacritic)
	}
	fmt.Fprintf(w, "  Released:   %s\n", Release(d.Released, now))
	if d.Playtime > 0 {
		fmt.Fprintf(w, "  Playtime:   %s\n", Count(d.Playtime, "hour"))
	}
	fmt.Fprintf(w, "  Genres:     %s\n", list(d.GenreNames()))
	fmt.Fprintf(w, "  Platforms:  %s\n", list(d.PlatformNames()))
	fmt.Fprintf(w, "  Developers: %s\n", list(companyNames(d.Developers)))
	fmt.Fprintf(w, "  Publishers: %s\n", list(companyNames(d.Publishers)))
	if d.Website != "" {
		fmt.Fprintf(w, "  Website:    %s\n", d.Website)
	}
	fmt.Fprintf(w, "  Status:     %s\n", Status(status))

	if d.DescriptionRaw != "" {
		fmt.Fprintf(w, "\n%s\n", d.DescriptionRaw)
	}

	if len(screenshots) > 0 {
		fmt.Fprintf(w, "\n%s:\n", Count(int64(len(screenshots)), "screenshot"))
		for _, s := range screenshots {
			fmt.Fprintf(w, "  %s\n", s.Image)
		}
	}
}

func companyNames(companies []gamescout.Company) []string {
	var names []string
	for _, c := range companies {
		names = append(names, c.Name)
	}
	return names
}

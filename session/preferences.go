package session

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/arbovm/levenshtein"
)

const (
	MaxGenres    = 2
	MaxPlatforms = 1
)

// Genres is the canonical display list of genres.
var Genres = []string{
	"Action",
	"Adventure",
	"RPG",
	"Shooter",
	"Strategy",
	"Indie",
	"Simulation",
	"Sports",
	"Racing",
	"Platformer",
}

// Platforms is the canonical display list of platforms.
var Platforms = []string{
	"PC",
	"PlayStation 5",
	"PlayStation 4",
	"Xbox Series X/S",
	"Xbox One",
	"Nintendo Switch",
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// NormalizeGenre resolves a stored genre to its canonical casing,
// e.g. "rpg" becomes "RPG". Unknown genres are capitalized: "mmo"
// becomes "Mmo".
func NormalizeGenre(raw string) string {
	for _, genre := range Genres {
		if strings.EqualFold(genre, raw) {
			return genre
		}
	}
	return Capitalize(raw)
}

// NormalizeGenres normalizes every genre, keeping order.
func NormalizeGenres(raw []string) []string {
	res := make([]string, 0, len(raw))
	for _, g := range raw {
		res = append(res, NormalizeGenre(g))
	}
	return res
}

// CapGenres truncates to MaxGenres.
func CapGenres(genres []string) []string {
	return capped(genres, MaxGenres)
}

// CapPlatforms truncates to MaxPlatforms.
func CapPlatforms(platforms []string) []string {
	return capped(platforms, MaxPlatforms)
}

func capped(list []string, max int) []string {
	res := make([]string, 0, max)
	for _, item := range list {
		if len(res) == max {
			break
		}
		res = append(res, item)
	}
	return res
}

// SuggestGenre returns the canonical genre closest to raw, and false
// if nothing is close enough to be a typo.
func SuggestGenre(raw string) (string, bool) {
	lowered := strings.ToLower(raw)
	best := ""
	bestDistance := -1
	for _, genre := range Genres {
		d := levenshtein.Distance(lowered, strings.ToLower(genre))
		if bestDistance == -1 || d < bestDistance {
			best = genre
			bestDistance = d
		}
	}

	if bestDistance > 0 && bestDistance <= 2 {
		return best, true
	}
	return "", false
}

// Editor holds an in-progress preference selection.
type Editor struct {
	initialGenres    []string
	initialPlatforms []string

	genres    []string
	platforms []string
}

// NewEditor starts editing from a stored identity: genres are
// normalized, then both lists are capped.
func NewEditor(genres []string, platforms []string) *Editor {
	e := &Editor{
		initialGenres:    CapGenres(NormalizeGenres(genres)),
		initialPlatforms: CapPlatforms(platforms),
	}
	e.Cancel()
	return e
}

func (e *Editor) Genres() []string {
	return append([]string{}, e.genres...)
}

func (e *Editor) Platforms() []string {
	return append([]string{}, e.platforms...)
}

// ToggleGenre removes the genre if selected, or adds it if fewer than
// MaxGenres are selected. It returns false when the toggle was refused.
func (e *Editor) ToggleGenre(genre string) bool {
	for i, g := range e.genres {
		if g == genre {
			e.genres = append(e.genres[:i:i], e.genres[i+1:]...)
			return true
		}
	}

	if len(e.genres) >= MaxGenres {
		return false
	}
	e.genres = append(e.genres, genre)
	return true
}

// SelectPlatform replaces the selected platform.
func (e *Editor) SelectPlatform(platform string) {
	e.platforms = []string{platform}
}

// Cancel discards edits.
func (e *Editor) Cancel() {
	e.genres = append([]string{}, e.initialGenres...)
	e.platforms = append([]string{}, e.initialPlatforms...)
}

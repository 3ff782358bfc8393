package scouttest

import (
	"fmt"
	"strings"

	"github.com/gamescout/scout/gamescout"
)

var knownGenres = []*gamescout.Genre{
	{ID: 4, Name: "Action", Slug: "action"},
	{ID: 3, Name: "Adventure", Slug: "adventure"},
	{ID: 5, Name: "RPG", Slug: "role-playing-games-rpg"},
	{ID: 2, Name: "Shooter", Slug: "shooter"},
	{ID: 10, Name: "Strategy", Slug: "strategy"},
	{ID: 51, Name: "Indie", Slug: "indie"},
	{ID: 14, Name: "Simulation", Slug: "simulation"},
	{ID: 15, Name: "Sports", Slug: "sports"},
	{ID: 1, Name: "Racing", Slug: "racing"},
	{ID: 83, Name: "Platformer", Slug: "platformer"},
}

var knownPlatforms = []*gamescout.Platform{
	{ID: 4, Name: "PC", Slug: "pc"},
	{ID: 187, Name: "PlayStation 5", Slug: "playstation5"},
	{ID: 18, Name: "PlayStation 4", Slug: "playstation4"},
	{ID: 186, Name: "Xbox Series S/X", Slug: "xbox-series-x"},
	{ID: 1, Name: "Xbox One", Slug: "xbox-one"},
	{ID: 7, Name: "Nintendo Switch", Slug: "nintendo-switch"},
}

// NewGame builds a catalog game. Genres are given by name and must be
// one of the known catalog genres; every game is on PC.
func NewGame(id int64, name string, rating float64, genres ...string) *gamescout.Game {
	g := &gamescout.Game{
		ID:              id,
		Name:            name,
		BackgroundImage: fmt.Sprintf("https://media.example.com/games/%d.jpg", id),
		Rating:          &rating,
		Released:        "2023-06-01",
		Platforms: []gamescout.PlatformEntry{
			{Platform: gamescout.Platform{ID: 4, Name: "PC"}},
		},
	}
	for _, genreName := range genres {
		for _, known := range knownGenres {
			if strings.EqualFold(known.Name, genreName) {
				g.Genres = append(g.Genres, *known)
			}
		}
	}
	return g
}

// DefaultCatalog is what a fresh server serves: 45 games, enough for
// three pages of 20.
func DefaultCatalog() []*gamescout.Game {
	seeds := []struct {
		name   string
		genres []string
	}{
		{"Hollow Knight", []string{"Action", "Platformer", "Indie"}},
		{"Celeste", []string{"Platformer", "Indie"}},
		{"The Witcher 3: Wild Hunt", []string{"RPG", "Action"}},
		{"Civilization VI", []string{"Strategy"}},
		{"Forza Horizon 5", []string{"Racing", "Sports"}},
		{"Stardew Valley", []string{"Simulation", "Indie"}},
		{"DOOM Eternal", []string{"Shooter", "Action"}},
		{"Disco Elysium", []string{"RPG", "Adventure"}},
		{"Portal 2", []string{"Adventure", "Shooter"}},
	}

	var games []*gamescout.Game
	for i := 0; i < 45; i++ {
		seed := seeds[i%len(seeds)]
		name := seed.name
		if i >= len(seeds) {
			name = fmt.Sprintf("%s #%d", seed.name, i/len(seeds)+1)
		}
		rating := 2.5 + float64(i%5)*0.5
		games = append(games, NewGame(int64(1000+i), name, rating, seed.genres...))
	}
	return games
}

package models

import (
	"time"
)

const catalogTTL = 1 * time.Hour

func FetchTargetForGenres() FetchTarget {
	return FetchTarget{
		StringID: "all",
		Type:     "genres",
		TTL:      catalogTTL,
	}
}

func FetchTargetForPlatforms() FetchTarget {
	return FetchTarget{
		StringID: "all",
		Type:     "platforms",
		TTL:      catalogTTL,
	}
}

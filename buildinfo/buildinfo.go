package buildinfo

import (
	"fmt"
	"strconv"
	"time"
)

var (
	Version       = "head" // set with -ldflags on release builds
	BuiltAt       = ""     // unix timestamp, set with -ldflags on release builds
	Commit        = ""     // set with -ldflags on release builds
	VersionString = ""     // formatted on boot from the above
)

func init() {
	VersionString = format(Version, BuiltAt, Commit)
}

// BuildTime returns when this binary was built, nil if unknown.
func BuildTime() *time.Time {
	epoch, err := strconv.ParseInt(BuiltAt, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(epoch, 0).UTC()
	return &t
}

func format(version string, builtAt string, commit string) string {
	var s string
	if builtAt == "" {
		s = fmt.Sprintf("scout %s, no build date", version)
	} else if epoch, err := strconv.ParseInt(builtAt, 10, 64); err != nil {
		s = fmt.Sprintf("scout %s, invalid build date", version)
	} else {
		s = fmt.Sprintf("scout %s, built on %s", version, time.Unix(epoch, 0).UTC().Format("Jan _2 2006 @ 15:04:05"))
	}
	if commit != "" {
		s = fmt.Sprintf("%s, ref %s", s, commit)
	}
	return s
}

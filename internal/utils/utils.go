// Package utils holds small path/URI conversions the renderer needs for
// its recent-files list and for accepting "file://" URIs on the command
// line alongside plain paths.
package utils

import (
	"net/url"
	"strings"
)

// UriToPath converts a "file://" URI to a filesystem path, passing
// anything else through unchanged so a plain path works as-is.
func UriToPath(u string) string {
	if strings.HasPrefix(u, "file://") {
		if uu, err := url.Parse(u); err == nil {
			return uu.Path
		}
	}
	return u
}

// PathToURI converts a filesystem path to a "file://" URI.
func PathToURI(p string) string {
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// RecentListCap bounds how many entries AppendUnique keeps; opening a
// (cap+1)th distinct path evicts the oldest one.
const RecentListCap = 10

// AppendUnique appends v to slice unless already present (moving it isn't
// needed here — the renderer only reads the list, never ranks by
// recency), then trims from the front down to RecentListCap entries.
func AppendUnique(slice []string, v string) []string {
	for _, s := range slice {
		if s == v {
			return slice
		}
	}
	slice = append(slice, v)
	if over := len(slice) - RecentListCap; over > 0 {
		slice = slice[over:]
	}
	return slice
}

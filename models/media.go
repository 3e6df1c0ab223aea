package models

import "unicode/utf8"

// DefaultImageBaseURL is the image host prefix used for posters and backdrops.
// Paths returned by the metadata API start with "/" so no separator is added.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/original"

// SynopsisLimit is the number of characters the banner shows of an overview.
const SynopsisLimit = 150

// ellipsis is a single rune so a truncated synopsis is exactly SynopsisLimit long
const ellipsis = "…"

// MediaItem is a movie or TV show as returned by the metadata API.
// The API names the title differently for movies (title) and shows (name),
// so callers should go through DisplayTitle rather than a field directly.
type MediaItem struct {
	ID           int64  `json:"id" msgpack:"id"`
	Title        string `json:"title,omitempty" msgpack:"title"`
	Name         string `json:"name,omitempty" msgpack:"name"`
	OriginalName string `json:"original_name,omitempty" msgpack:"original_name"`
	Overview     string `json:"overview,omitempty" msgpack:"overview"`
	BackdropPath string `json:"backdrop_path,omitempty" msgpack:"backdrop_path"`
	PosterPath   string `json:"poster_path,omitempty" msgpack:"poster_path"`
	MediaType    string `json:"media_type,omitempty" msgpack:"media_type"`
}

// Listing is the envelope every list endpoint of the metadata API returns.
type Listing struct {
	Results []MediaItem `json:"results" msgpack:"results"`
}

// Items returns the result list, never nil.
func (l *Listing) Items() []MediaItem {
	if l == nil || l.Results == nil {
		return []MediaItem{}
	}
	return l.Results
}

// DisplayTitle resolves the title through title, then name, then original_name.
func (m MediaItem) DisplayTitle() string {
	switch {
	case m.Title != "":
		return m.Title
	case m.Name != "":
		return m.Name
	default:
		return m.OriginalName
	}
}

// ImagePath picks the poster for large rows and the backdrop otherwise.
func (m MediaItem) ImagePath(large bool) string {
	if large {
		return m.PosterPath
	}
	return m.BackdropPath
}

// ImageURL joins the image host prefix and a path fragment.
// An empty path yields the bare prefix.
func ImageURL(base, path string) string {
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + path
}

// Truncate shortens s to n runes, the last of which is an ellipsis.
// Strings of n runes or fewer come back unchanged.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n-1 {
			return s[:i] + ellipsis
		}
		count++
	}
	return s
}

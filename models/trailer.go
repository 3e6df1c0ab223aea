package models

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"goflix/metrics"

	"github.com/rohanthewiz/serr"
)

// ErrTrailerNotFound is returned when a title has no usable trailer.
var ErrTrailerNotFound = errors.New("trailer not found")

const youtubeWatchURL = "https://www.youtube.com/watch"

// TrailerFinder resolves a title to a YouTube watch URL using the metadata
// API: the best search hit, then its video list.
type TrailerFinder struct {
	client *MetadataClient
}

// NewTrailerFinder creates a finder that shares the client's limiter.
func NewTrailerFinder(client *MetadataClient) *TrailerFinder {
	return &TrailerFinder{client: client}
}

type searchHit struct {
	ID        int64  `json:"id"`
	MediaType string `json:"media_type"`
}

type videoEntry struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Resolve returns "https://www.youtube.com/watch?v=<key>" for title.
func (tf *TrailerFinder) Resolve(ctx context.Context, title string) (watchURL string, err error) {
	defer func() {
		switch {
		case err == nil:
			metrics.TrailerLookups.WithLabelValues("found").Inc()
		case errors.Is(err, ErrTrailerNotFound):
			metrics.TrailerLookups.WithLabelValues("not_found").Inc()
		default:
			metrics.TrailerLookups.WithLabelValues("error").Inc()
		}
	}()

	if title == "" {
		return "", ErrTrailerNotFound
	}

	var search struct {
		Results []searchHit `json:"results"`
	}
	params := url.Values{"query": {title}}
	if tf.client.language != "" {
		params.Set("language", tf.client.language)
	}
	if err := tf.client.getJSON(ctx, "/search/multi", params, &search); err != nil {
		return "", serr.Wrap(err, "trailer search failed")
	}

	hit, ok := firstPlayable(search.Results)
	if !ok {
		return "", ErrTrailerNotFound
	}

	var videos struct {
		Results []videoEntry `json:"results"`
	}
	endpoint := "/" + hit.MediaType + "/" + strconv.FormatInt(hit.ID, 10) + "/videos"
	if err := tf.client.getJSON(ctx, endpoint, nil, &videos); err != nil {
		return "", serr.Wrap(err, "trailer video list failed")
	}

	key := pickYouTubeKey(videos.Results)
	if key == "" {
		return "", ErrTrailerNotFound
	}

	return youtubeWatchURL + "?" + url.Values{"v": {key}}.Encode(), nil
}

// firstPlayable returns the first search hit that can have videos.
// People also show up in multi search and are skipped.
func firstPlayable(hits []searchHit) (searchHit, bool) {
	for _, h := range hits {
		if h.MediaType == "movie" || h.MediaType == "tv" {
			return h, true
		}
	}
	return searchHit{}, false
}

// pickYouTubeKey prefers a YouTube "Trailer" and falls back to any YouTube video.
func pickYouTubeKey(videos []videoEntry) string {
	fallback := ""
	for _, v := range videos {
		if v.Site != "YouTube" || v.Key == "" {
			continue
		}
		if v.Type == "Trailer" {
			return v.Key
		}
		if fallback == "" {
			fallback = v.Key
		}
	}
	return fallback
}

// VideoIDFromURL extracts the "v" query parameter of a watch URL.
func VideoIDFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", serr.Wrap(err, "invalid trailer url")
	}
	id := u.Query().Get("v")
	if id == "" {
		return "", ErrTrailerNotFound
	}
	return id, nil
}

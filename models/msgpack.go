package models

import (
	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// Listings are stored msgpack-encoded by the redis and duckdb cache
// backends. msgpack is noticeably smaller than JSON for the overview text
// that makes up most of a listing.

func encodeListing(l *Listing) ([]byte, error) {
	b, err := msgpack.Marshal(l)
	if err != nil {
		return nil, serr.Wrap(err, "failed to msgpack encode listing")
	}
	return b, nil
}

// decodeListing never returns a listing with nil Results.
func decodeListing(b []byte) (*Listing, error) {
	var l Listing
	if err := msgpack.Unmarshal(b, &l); err != nil {
		return nil, serr.Wrap(err, "failed to msgpack decode listing")
	}
	if l.Results == nil {
		l.Results = []MediaItem{}
	}
	return &l, nil
}

package handlers

import "github.com/monocle-dev/holdings/internal/storage"

var (
	// MediaURL prefixes stored image paths in responses.
	MediaURL = "/media/"

	// MediaStorage receives uploaded investment images.
	MediaStorage storage.Storage

	MaxUploadBytes int64 = 10 << 20
)

func Configure(mediaURL string, store storage.Storage, maxUploadBytes int64) {
	MediaURL = mediaURL
	MediaStorage = store

	if maxUploadBytes > 0 {
		MaxUploadBytes = maxUploadBytes
	}
}

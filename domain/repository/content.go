package repository

import "ttphotos/domain/model"

// ISongLibrary provides random access to the static song pool
type ISongLibrary interface {
	Songs() []model.Song
	RandomSong() model.Song
	// RandomSongExcept never returns the named song when the pool has at
	// least two entries; with a single song it returns that song.
	RandomSongExcept(name string) model.Song
	RandomTitle() string
	RandomHashtags(n int) []string
	FallbackLyrics() string
}

// IPhotoStore lists and serves background photos
type IPhotoStore interface {
	List() ([]string, error)
	// RandomDistinct picks n distinct filenames.
	RandomDistinct(n int) ([]string, error)
	Open(name string) ([]byte, error)
}

package content

import (
	"math/rand"
	"strings"
	"time"

	"ttphotos/domain/model"
	"ttphotos/domain/repository"
)

// Library serves random selections from the static song, hashtag and title
// pools. Selection is non-cryptographic and makes no reproducibility promise.
type Library struct {
	rng *rand.Rand
}

func NewLibrary() repository.ISongLibrary {
	return &Library{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewLibraryWithSource injects a deterministic source for tests.
func NewLibraryWithSource(src rand.Source) *Library {
	return &Library{rng: rand.New(src)}
}

func (l *Library) Songs() []model.Song {
	out := make([]model.Song, len(songs))
	copy(out, songs)
	return out
}

func (l *Library) RandomSong() model.Song {
	return songs[l.rng.Intn(len(songs))]
}

// RandomSongExcept avoids back-to-back repeats. The pool is tiny, so with a
// single entry the exclusion is ignored rather than failing.
func (l *Library) RandomSongExcept(name string) model.Song {
	candidates := make([]model.Song, 0, len(songs))
	for _, s := range songs {
		if s.Name != name {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return songs[l.rng.Intn(len(songs))]
	}
	return candidates[l.rng.Intn(len(candidates))]
}

func (l *Library) RandomTitle() string {
	return catchyTitles[l.rng.Intn(len(catchyTitles))]
}

// RandomHashtags picks n distinct hashtags without replacement.
func (l *Library) RandomHashtags(n int) []string {
	return PickDistinct(trendingMusicHashtags, n, l.rng)
}

// FallbackLyrics returns a usable lyric block for blank render input.
func (l *Library) FallbackLyrics() string {
	for i := 0; i < len(songs); i++ {
		s := l.RandomSong()
		if strings.TrimSpace(s.Lyrics) != "" {
			return s.Lyrics
		}
	}
	return songs[0].Lyrics
}

// PickDistinct draws k distinct items from pool as a pure function of
// (pool, k, rng). When k exceeds the pool it returns a full permutation.
func PickDistinct(pool []string, k int, rng *rand.Rand) []string {
	if k > len(pool) {
		k = len(pool)
	}
	perm := rng.Perm(len(pool))
	out := make([]string, 0, k)
	for _, idx := range perm[:k] {
		out = append(out, pool[idx])
	}
	return out
}

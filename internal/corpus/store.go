package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"golang.org/x/sync/singleflight"

	"rizkifajar/quran-api/internal/data"
)

const (
	FirstChapter = 1
	LastChapter  = 114
)

type chapterKey struct {
	Mode    data.MushafMode
	Chapter int
}

// Store loads the verse datasets lazily and memoizes them for the process
// lifetime. Concurrent first loads of the same slot are coalesced into a
// single underlying read; after a slot is populated it is never mutated
// again, so cache hits are plain read-locked map lookups.
type Store struct {
	fsys  fs.FS
	group singleflight.Group

	mu       sync.RWMutex
	search   []SearchChapter
	chapters map[chapterKey][]RawVerse
}

func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:     fsys,
		chapters: make(map[chapterKey][]RawVerse),
	}
}

// SearchData returns the full searchable dataset, reading it from disk on
// first call only.
func (s *Store) SearchData() ([]SearchChapter, error) {
	s.mu.RLock()
	cached := s.search
	s.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	result, err, _ := s.group.Do("search-data", func() (any, error) {
		// Recheck under the flight: a caller that lost the race to a
		// completed load must not trigger a second read.
		s.mu.RLock()
		loaded := s.search
		s.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}

		var chapters []SearchChapter
		if err := readJSON(s.fsys, searchDataPath, &chapters); err != nil {
			if errors.Is(err, data.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %v", data.ErrDataUnavailable, err)
			}
			return nil, err
		}

		s.mu.Lock()
		s.search = chapters
		s.mu.Unlock()

		return chapters, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]SearchChapter), nil
}

// Chapters returns the metadata for all 114 chapters, derived from the
// searchable dataset.
func (s *Store) Chapters() ([]data.Chapter, error) {
	searchData, err := s.SearchData()
	if err != nil {
		return nil, err
	}

	chapters := make([]data.Chapter, 0, len(searchData))
	for _, c := range searchData {
		chapters = append(chapters, c.Chapter())
	}

	return chapters, nil
}

// VerseCounts returns the verse count per chapter id, used for walking juz
// ranges across chapter boundaries.
func (s *Store) VerseCounts() (map[int]int, error) {
	searchData, err := s.SearchData()
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(searchData))
	for _, c := range searchData {
		counts[c.ID] = c.TotalVerses
	}

	return counts, nil
}

// ChapterSource returns one chapter's verses for one mushaf mode, memoized
// per (chapter, mode) pair. Chapter ids outside 1-114 fail with
// data.ErrRecordNotFound without touching the filesystem.
func (s *Store) ChapterSource(chapterID int, mode data.MushafMode) ([]RawVerse, error) {
	if chapterID < FirstChapter || chapterID > LastChapter {
		return nil, fmt.Errorf("%w: chapter %d", data.ErrRecordNotFound, chapterID)
	}

	key := chapterKey{Mode: mode, Chapter: chapterID}

	s.mu.RLock()
	cached, ok := s.chapters[key]
	s.mu.RUnlock()

	if ok {
		return cached, nil
	}

	result, err, _ := s.group.Do(fmt.Sprintf("chapter:%s:%d", mode, chapterID), func() (any, error) {
		s.mu.RLock()
		loaded, ok := s.chapters[key]
		s.mu.RUnlock()
		if ok {
			return loaded, nil
		}

		verses, err := sourceFor(s.fsys, mode).ChapterVerses(chapterID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.chapters[key] = verses
		s.mu.Unlock()

		return verses, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]RawVerse), nil
}

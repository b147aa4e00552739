package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"rizkifajar/quran-api/internal/data"
)

// countingFS wraps a fs.FS and counts how many times each file is opened,
// so tests can assert a dataset was read from disk exactly once.
type countingFS struct {
	inner fs.FS
	mu    sync.Mutex
	opens map[string]int
}

func newCountingFS(inner fs.FS) *countingFS {
	return &countingFS{
		inner: inner,
		opens: make(map[string]int),
	}
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.mu.Lock()
	c.opens[name]++
	c.mu.Unlock()

	return c.inner.Open(name)
}

func (c *countingFS) openCount(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.opens[name]
}

func (c *countingFS) totalOpens() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, n := range c.opens {
		total += n
	}
	return total
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()

	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return payload
}

func searchDataFS(t *testing.T, chapters []SearchChapter) fstest.MapFS {
	t.Helper()

	return fstest.MapFS{
		searchDataPath: &fstest.MapFile{Data: mustMarshal(t, chapters)},
	}
}

func testSearchChapters() []SearchChapter {
	return []SearchChapter{
		{
			ID:              1,
			Name:            "الفاتحة",
			Transliteration: "Al-Fatihah",
			Translation:     "Pembukaan",
			TotalVerses:     2,
			Type:            "Mekah",
			Verses: []SearchVerse{
				{ID: 1, Text: "بِسْمِ", Translation: "Dengan nama Allah"},
				{ID: 2, Text: "ٱلْحَمْدُ", Translation: "Segala puji"},
			},
		},
		{
			ID:              2,
			Name:            "البقرة",
			Transliteration: "Al-Baqarah",
			Translation:     "Sapi",
			TotalVerses:     3,
			Type:            "Madinah",
			Verses: []SearchVerse{
				{ID: 1, Text: "الم", Translation: "Alif Lam Mim"},
				{ID: 2, Text: "ذَٰلِكَ", Translation: "Kitab itu"},
				{ID: 3, Text: "ٱلَّذِينَ", Translation: "Orang-orang yang beriman"},
			},
		},
	}
}

func TestSearchDataLoadsExactlyOnce(t *testing.T) {
	fsys := newCountingFS(searchDataFS(t, testSearchChapters()))
	store := NewStore(fsys)

	first, err := store.SearchData()
	if err != nil {
		t.Fatalf("SearchData() returned an error: %v", err)
	}

	second, err := store.SearchData()
	if err != nil {
		t.Fatalf("SearchData() returned an error on second call: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Errorf("expected 2 chapters, got %d and %d", len(first), len(second))
	}

	if &first[0] != &second[0] {
		t.Error("expected both calls to return the same cached structure")
	}

	if n := fsys.openCount(searchDataPath); n != 1 {
		t.Errorf("expected exactly 1 read of the search dataset, got %d", n)
	}
}

func TestSearchDataConcurrentCallsCoalesce(t *testing.T) {
	fsys := newCountingFS(searchDataFS(t, testSearchChapters()))
	store := NewStore(fsys)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if _, err := store.SearchData(); err != nil {
				t.Errorf("SearchData() returned an error: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := fsys.openCount(searchDataPath); n != 1 {
		t.Errorf("expected concurrent first loads to coalesce into 1 read, got %d", n)
	}
}

func TestSearchDataMissingFile(t *testing.T) {
	store := NewStore(fstest.MapFS{})

	_, err := store.SearchData()
	if !errors.Is(err, data.ErrDataUnavailable) {
		t.Errorf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestSearchDataMalformedFile(t *testing.T) {
	store := NewStore(fstest.MapFS{
		searchDataPath: &fstest.MapFile{Data: []byte("{not json")},
	})

	_, err := store.SearchData()
	if !errors.Is(err, data.ErrDataFormat) {
		t.Errorf("expected ErrDataFormat, got %v", err)
	}
}

func TestChaptersMetadata(t *testing.T) {
	store := NewStore(searchDataFS(t, testSearchChapters()))

	chapters, err := store.Chapters()
	if err != nil {
		t.Fatalf("Chapters() returned an error: %v", err)
	}

	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}

	first := chapters[0]
	if first.ID != 1 || first.NameSimple != "Al-Fatihah" || first.VersesCount != 2 {
		t.Errorf("unexpected chapter metadata: %+v", first)
	}
	if first.TranslatedName.Name != "Pembukaan" || first.TranslatedName.LanguageName != "indonesian" {
		t.Errorf("unexpected translated name: %+v", first.TranslatedName)
	}
}

func TestVerseCounts(t *testing.T) {
	store := NewStore(searchDataFS(t, testSearchChapters()))

	counts, err := store.VerseCounts()
	if err != nil {
		t.Fatalf("VerseCounts() returned an error: %v", err)
	}

	if counts[1] != 2 || counts[2] != 3 {
		t.Errorf("unexpected verse counts: %v", counts)
	}
}

func TestChapterSourceMemoizedPerChapterAndMode(t *testing.T) {
	fsys := newCountingFS(fstest.MapFS{
		fmt.Sprintf(kemenagChapterPath, 1): &fstest.MapFile{
			Data: mustMarshal(t, kemenagChapter{Data: []kemenagVerse{
				{AyaNumber: 1, AyaText: "بِسْمِ", TranslationAyaText: "Dengan nama Allah", JuzID: 1, PageNumber: 1},
			}}),
		},
		fmt.Sprintf(uthmaniChapterPath, 1): &fstest.MapFile{
			Data: mustMarshal(t, uthmaniChapter{Verses: []uthmaniVerse{
				{ID: 1, Text: "بِسْمِ", Translation: "Dengan nama Allah"},
			}}),
		},
	})
	store := NewStore(fsys)

	for i := 0; i < 3; i++ {
		if _, err := store.ChapterSource(1, data.ModeKemenag); err != nil {
			t.Fatalf("ChapterSource(kemenag) returned an error: %v", err)
		}
	}

	if _, err := store.ChapterSource(1, data.ModeUthmani); err != nil {
		t.Fatalf("ChapterSource(uthmani) returned an error: %v", err)
	}

	if n := fsys.openCount(fmt.Sprintf(kemenagChapterPath, 1)); n != 1 {
		t.Errorf("expected 1 read of the kemenag chapter file, got %d", n)
	}
	if n := fsys.openCount(fmt.Sprintf(uthmaniChapterPath, 1)); n != 1 {
		t.Errorf("expected 1 read of the uthmani chapter file, got %d", n)
	}
}

func TestChapterSourceOutOfRange(t *testing.T) {
	fsys := newCountingFS(fstest.MapFS{})
	store := NewStore(fsys)

	for _, chapterID := range []int{0, -1, 115} {
		_, err := store.ChapterSource(chapterID, data.ModeKemenag)
		if !errors.Is(err, data.ErrRecordNotFound) {
			t.Errorf("chapter %d: expected ErrRecordNotFound, got %v", chapterID, err)
		}
	}

	if n := fsys.totalOpens(); n != 0 {
		t.Errorf("expected no filesystem access for out-of-range chapters, got %d opens", n)
	}
}

func TestChapterSourceMissingFile(t *testing.T) {
	store := NewStore(fstest.MapFS{})

	_, err := store.ChapterSource(1, data.ModeKemenag)
	if !errors.Is(err, data.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestChapterSourceMalformedFile(t *testing.T) {
	store := NewStore(fstest.MapFS{
		fmt.Sprintf(kemenagChapterPath, 1): &fstest.MapFile{Data: []byte("[broken")},
	})

	_, err := store.ChapterSource(1, data.ModeKemenag)
	if !errors.Is(err, data.ErrDataFormat) {
		t.Errorf("expected ErrDataFormat, got %v", err)
	}
}

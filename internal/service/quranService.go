package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/data"
)

const (
	FirstJuz = 1
	LastJuz  = 30

	FirstPage = 1
	LastPage  = 604
)

// juzStarts names the (chapter, verse) at which each of the 30 juz begins.
// Juz N spans [start_N, start_{N+1}) in chapter:verse order; juz 30 runs to
// the end of chapter 114.
var juzStarts = map[int]data.VerseRef{
	1:  {Chapter: 1, Verse: 1},
	2:  {Chapter: 2, Verse: 142},
	3:  {Chapter: 2, Verse: 253},
	4:  {Chapter: 3, Verse: 93},
	5:  {Chapter: 4, Verse: 24},
	6:  {Chapter: 4, Verse: 148},
	7:  {Chapter: 5, Verse: 82},
	8:  {Chapter: 6, Verse: 111},
	9:  {Chapter: 7, Verse: 88},
	10: {Chapter: 8, Verse: 41},
	11: {Chapter: 9, Verse: 93},
	12: {Chapter: 11, Verse: 6},
	13: {Chapter: 12, Verse: 53},
	14: {Chapter: 15, Verse: 1},
	15: {Chapter: 17, Verse: 1},
	16: {Chapter: 18, Verse: 75},
	17: {Chapter: 21, Verse: 1},
	18: {Chapter: 23, Verse: 1},
	19: {Chapter: 25, Verse: 21},
	20: {Chapter: 27, Verse: 56},
	21: {Chapter: 29, Verse: 46},
	22: {Chapter: 33, Verse: 31},
	23: {Chapter: 35, Verse: 28},
	24: {Chapter: 38, Verse: 32},
	25: {Chapter: 41, Verse: 47},
	26: {Chapter: 46, Verse: 1},
	27: {Chapter: 51, Verse: 31},
	28: {Chapter: 58, Verse: 1},
	29: {Chapter: 67, Verse: 1},
	30: {Chapter: 78, Verse: 1},
}

type QuranService struct {
	store     *corpus.Store
	pageIndex PageIndex
	cache     ResponseCache
	logger    *slog.Logger
}

func NewQuranService(
	store *corpus.Store,
	pageIndex PageIndex,
	cache ResponseCache,
	logger *slog.Logger,
) *QuranService {
	return &QuranService{
		store:     store,
		pageIndex: pageIndex,
		cache:     cache,
		logger:    logger,
	}
}

// GetChapters returns the metadata for all 114 chapters.
func (s *QuranService) GetChapters() (*data.ChaptersResponse, error) {
	chapters, err := s.store.Chapters()
	if err != nil {
		return nil, err
	}

	return &data.ChaptersResponse{Chapters: chapters}, nil
}

// GetChapterVerses returns one chapter's verses for the given mushaf mode.
// When the kemenag chapter file is missing the chapter is served from the
// uthmani source instead, since some deployments ship an incomplete kemenag
// dataset.
func (s *QuranService) GetChapterVerses(chapterID int, mode data.MushafMode) (*data.VersesResponse, error) {
	if chapterID < corpus.FirstChapter || chapterID > corpus.LastChapter {
		return nil, fmt.Errorf("%w: chapter %d", data.ErrRecordNotFound, chapterID)
	}

	cacheKey := fmt.Sprintf("verses:chapter:%d:%s", chapterID, mode)
	if cached := s.cachedVerses(cacheKey); cached != nil {
		return cached, nil
	}

	rows, err := s.store.ChapterSource(chapterID, mode)
	if err != nil && mode == data.ModeKemenag && errors.Is(err, data.ErrRecordNotFound) {
		rows, err = s.store.ChapterSource(chapterID, data.ModeUthmani)
	}
	if err != nil {
		return nil, err
	}

	verses := make([]data.Verse, 0, len(rows))
	for _, row := range rows {
		ref := data.VerseRef{Chapter: chapterID, Verse: row.Number}
		verses = append(verses, buildVerse(ref, row, row.Juz, row.Page))
	}

	response := data.NewVersesResponse(verses)
	s.storeVerses(cacheKey, response)

	return response, nil
}

// GetJuzVerses returns the verses of one juz, walking forward from the
// juz's start point and rolling over chapter boundaries until just before
// the next juz's start.
func (s *QuranService) GetJuzVerses(juzID int, mode data.MushafMode) (*data.VersesResponse, error) {
	start, ok := juzStarts[juzID]
	if !ok {
		return nil, fmt.Errorf("%w: juz %d", data.ErrInvalidRange, juzID)
	}

	next, ok := juzStarts[juzID+1]
	if !ok {
		next = data.VerseRef{Chapter: corpus.LastChapter + 1, Verse: 1}
	}

	cacheKey := fmt.Sprintf("verses:juz:%d:%s", juzID, mode)
	if cached := s.cachedVerses(cacheKey); cached != nil {
		return cached, nil
	}

	counts, err := s.store.VerseCounts()
	if err != nil {
		return nil, err
	}

	// The page layout table is not available locally, so juz views carry an
	// approximate page number derived from the juz index.
	page := juzPagePlaceholder(juzID)

	var refs []structuralRef
	current := start
	for current.Chapter < next.Chapter || (current.Chapter == next.Chapter && current.Verse < next.Verse) {
		refs = append(refs, structuralRef{ref: current, juz: juzID, page: page})

		current.Verse++
		if current.Verse > counts[current.Chapter] {
			current.Verse = 1
			current.Chapter++
			if current.Chapter > corpus.LastChapter {
				break
			}
		}
	}

	response := data.NewVersesResponse(s.hydrate(refs, mode))
	s.storeVerses(cacheKey, response)

	return response, nil
}

// GetPageVerses returns the verses on one physical mushaf page. The page
// layout comes from the injected page index; the verse text is attached
// from the local sources.
func (s *QuranService) GetPageVerses(ctx context.Context, pageID int, mode data.MushafMode) (*data.VersesResponse, error) {
	if pageID < FirstPage || pageID > LastPage {
		return nil, fmt.Errorf("%w: page %d", data.ErrInvalidRange, pageID)
	}

	pageVerses, err := s.pageIndex.PageVerses(ctx, pageID)
	if err != nil {
		return nil, err
	}

	refs := make([]structuralRef, 0, len(pageVerses))
	for _, pv := range pageVerses {
		page := pv.Page
		if page == 0 {
			page = pageID
		}
		refs = append(refs, structuralRef{ref: pv.Ref, juz: pv.Juz, page: page})
	}

	return data.NewVersesResponse(s.hydrate(refs, mode)), nil
}

// structuralRef is a verse identity plus the structural metadata the
// requesting view already knows, carried through hydration unchanged.
type structuralRef struct {
	ref  data.VerseRef
	juz  int
	page int
}

// hydrate attaches full text and translation to a list of verse identities.
// Each distinct chapter's source is loaded at most once, and chapters load
// concurrently. A chapter whose source cannot be loaded degrades to
// placeholder verses with empty text rather than failing the whole batch;
// output order always matches input order.
func (s *QuranService) hydrate(refs []structuralRef, mode data.MushafMode) []data.Verse {
	chapterIDs := make(map[int]struct{})
	for _, r := range refs {
		chapterIDs[r.ref.Chapter] = struct{}{}
	}

	loaded := make(map[int]map[int]corpus.RawVerse, len(chapterIDs))

	var mu sync.Mutex
	var wg sync.WaitGroup

	for chapterID := range chapterIDs {
		chapterID := chapterID
		wg.Add(1)
		go func() {
			defer wg.Done()

			rows, err := s.store.ChapterSource(chapterID, mode)
			if err != nil {
				s.logger.Error("failed to load chapter source",
					"chapter", chapterID, "mode", mode, "error", err)
				return
			}

			byNumber := make(map[int]corpus.RawVerse, len(rows))
			for _, row := range rows {
				byNumber[row.Number] = row
			}

			mu.Lock()
			loaded[chapterID] = byNumber
			mu.Unlock()
		}()
	}

	wg.Wait()

	verses := make([]data.Verse, 0, len(refs))
	for _, r := range refs {
		row, ok := loaded[r.ref.Chapter][r.ref.Verse]
		if !ok {
			verses = append(verses, placeholderVerse(r))
			continue
		}
		verses = append(verses, buildVerse(r.ref, row, r.juz, r.page))
	}

	return verses
}

func buildVerse(ref data.VerseRef, row corpus.RawVerse, juz, page int) data.Verse {
	return data.Verse{
		ID:          ref.NumericID(),
		VerseNumber: ref.Verse,
		VerseKey:    ref.Key(),
		TextUthmani: row.ArabicText,
		JuzNumber:   juz,
		PageNumber:  page,
		Translations: []data.Translation{{
			ID:         data.DefaultTranslationID,
			ResourceID: data.DefaultTranslationID,
			Text:       row.TranslationText,
		}},
		Words: []data.Word{},
	}
}

func placeholderVerse(r structuralRef) data.Verse {
	return data.Verse{
		ID:           r.ref.NumericID(),
		VerseNumber:  r.ref.Verse,
		VerseKey:     r.ref.Key(),
		JuzNumber:    r.juz,
		PageNumber:   r.page,
		Translations: []data.Translation{},
		Words:        []data.Word{},
	}
}

func juzPagePlaceholder(juzID int) int {
	page := int(math.Ceil(float64(juzID) * 20.13))
	return min(LastPage, max(FirstPage, page))
}

func (s *QuranService) cachedVerses(key string) *data.VersesResponse {
	if s.cache == nil {
		return nil
	}

	payload, err := s.cache.GetResponse(key)
	if err != nil {
		s.logger.Error("failed to read response cache", "key", key, "error", err)
		return nil
	}
	if payload == nil {
		return nil
	}

	var response data.VersesResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		s.logger.Error("discarding malformed cached response", "key", key, "error", err)
		return nil
	}

	return &response
}

func (s *QuranService) storeVerses(key string, response *data.VersesResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.cache.SetResponse(key, payload); err != nil {
		s.logger.Error("failed to write response cache", "key", key, "error", err)
	}
}

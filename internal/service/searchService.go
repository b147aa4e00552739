package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"rizkifajar/quran-api/internal/arabic"
	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/data"
)

const DefaultSearchPageSize = 20

type SearchService struct {
	store  *corpus.Store
	cache  ResponseCache
	logger *slog.Logger
}

func NewSearchService(store *corpus.Store, cache ResponseCache, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Search scans the whole corpus for verses matching every query term. A
// term matches a verse if it is a case-insensitive substring of the
// translation, a substring of the raw Arabic text, or a substring of the
// diacritic-stripped Arabic text after the term itself is stripped. The
// three-way OR per term lets "shalat" hit the translation while a bare
// Arabic root hits the vocalized text.
//
// Results come back in corpus order, paginated; matched terms in the
// translation are wrapped in <em> markers. An empty or whitespace-only
// query returns an empty result set without touching the corpus.
func (s *SearchService) Search(query string, page, perPage int) (*data.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultSearchPageSize
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return &data.SearchResponse{
			Search: data.SearchPage{
				Query:       query,
				CurrentPage: 1,
				Results:     []data.SearchResult{},
			},
		}, nil
	}

	cacheKey := searchCacheKey(trimmed, page, perPage)
	if cached := s.cachedSearch(cacheKey); cached != nil {
		return cached, nil
	}

	corpusData, err := s.store.SearchData()
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(trimmed))
	highlight := newHighlighter(trimmed)

	var results []data.SearchResult
	for _, chapter := range corpusData {
		for _, verse := range chapter.Verses {
			if !matches(verse, terms) {
				continue
			}

			ref := data.VerseRef{Chapter: chapter.ID, Verse: verse.ID}
			results = append(results, data.SearchResult{
				VerseKey: ref.Key(),
				VerseID:  ref.NumericID(),
				Text:     verse.Text,
				Translations: []data.SearchTranslation{{
					Text:         highlight.apply(verse.Translation),
					ResourceID:   data.DefaultTranslationID,
					Name:         "Indonesian",
					LanguageName: "indonesian",
				}},
			})
		}
	}

	totalResults := len(results)
	totalPages := (totalResults + perPage - 1) / perPage

	pageResults := []data.SearchResult{}
	if start := (page - 1) * perPage; start < totalResults {
		pageResults = results[start:min(start+perPage, totalResults)]
	}

	response := &data.SearchResponse{
		Search: data.SearchPage{
			Query:        query,
			TotalResults: totalResults,
			CurrentPage:  page,
			TotalPages:   totalPages,
			Results:      pageResults,
		},
	}

	s.storeSearch(cacheKey, response)

	return response, nil
}

// matches reports whether every term independently hits the verse's
// translation, raw Arabic text, or normalized Arabic text.
func matches(verse corpus.SearchVerse, terms []string) bool {
	translation := strings.ToLower(verse.Translation)
	raw := verse.Text
	plain := arabic.StripDiacritics(raw)

	for _, term := range terms {
		if strings.Contains(translation, term) || strings.Contains(raw, term) {
			continue
		}
		if strings.Contains(plain, arabic.StripDiacritics(term)) {
			continue
		}
		return false
	}

	return true
}

// highlighter wraps every occurrence of a query term in <em> markers. Terms
// are regex-escaped before the alternation is composed; if the pattern
// still fails to compile the translation is returned unmodified rather
// than failing the search.
type highlighter struct {
	pattern *regexp.Regexp
}

func newHighlighter(query string) highlighter {
	var quoted []string
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) > 2 {
			quoted = append(quoted, regexp.QuoteMeta(word))
		}
	}
	if len(quoted) == 0 {
		return highlighter{}
	}

	pattern, err := regexp.Compile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	if err != nil {
		return highlighter{}
	}

	return highlighter{pattern: pattern}
}

func (h highlighter) apply(text string) string {
	if h.pattern == nil {
		return text
	}
	return h.pattern.ReplaceAllString(text, "<em>$1</em>")
}

func searchCacheKey(query string, page, perPage int) string {
	return fmt.Sprintf("search:%s:%d:%d", query, page, perPage)
}

func (s *SearchService) cachedSearch(key string) *data.SearchResponse {
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

	var response data.SearchResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		s.logger.Error("discarding malformed cached response", "key", key, "error", err)
		return nil
	}

	return &response
}

func (s *SearchService) storeSearch(key string, response *data.SearchResponse) {
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

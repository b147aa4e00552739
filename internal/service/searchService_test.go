package service

import (
	"encoding/json"
	"reflect"
	"testing"
	"testing/fstest"

	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/data"
)

func searchFixtureChapters() []corpus.SearchChapter {
	return []corpus.SearchChapter{
		{
			ID:              1,
			Name:            "الفاتحة",
			Transliteration: "Al-Fatihah",
			Translation:     "Pembukaan",
			TotalVerses:     3,
			Type:            "Mekah",
			Verses: []corpus.SearchVerse{
				{
					ID:          1,
					Text:        "وَٱسْتَعِينُوا۟ بِٱلصَّبْرِ وَٱلصَّلَوٰةِ",
					Translation: "Mohonlah pertolongan dengan sabar dan shalat",
				},
				{
					ID:          2,
					Text:        "ٱشْكُرُوا۟ لِلَّهِ",
					Translation: "Bersyukurlah kepada Allah",
				},
				{
					ID:          3,
					Text:        "الم",
					Translation: "Hanya sabar saja",
				},
			},
		},
		{
			ID:              2,
			Name:            "النور",
			Transliteration: "An-Nur",
			Translation:     "Cahaya",
			TotalVerses:     5,
			Type:            "Madinah",
			Verses: []corpus.SearchVerse{
				{ID: 1, Text: "ٱللَّهُ نُورُ", Translation: "Allah adalah cahaya pertama"},
				{ID: 2, Text: "مَثَلُ نُورِهِۦ", Translation: "Perumpamaan cahaya kedua"},
				{ID: 3, Text: "نُّورٌ عَلَىٰ نُورٍ", Translation: "Cahaya di atas cahaya ketiga"},
				{ID: 4, Text: "يَهْدِى ٱللَّهُ", Translation: "Allah membimbing kepada cahaya keempat"},
				{ID: 5, Text: "لِنُورِهِۦ", Translation: "Menuju cahaya kelima"},
			},
		},
	}
}

func searchFixtureFS(t *testing.T) fstest.MapFS {
	t.Helper()

	payload, err := json.Marshal(searchFixtureChapters())
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	return fstest.MapFS{
		testSearchDataPath: &fstest.MapFile{Data: payload},
	}
}

func newTestSearchService(t *testing.T) *SearchService {
	t.Helper()
	return NewSearchService(corpus.NewStore(searchFixtureFS(t)), nil, testLogger())
}

func TestSearchRequiresAllTerms(t *testing.T) {
	s := newTestSearchService(t)

	// "sabar" alone hits 1:1 and 1:3; adding "shalat" narrows to 1:1
	response, err := s.Search("sabar shalat", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	results := response.Search.Results
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].VerseKey != "1:1" {
		t.Errorf("expected verse 1:1, got %s", results[0].VerseKey)
	}
}

func TestSearchMatchesDiacriticStrippedArabic(t *testing.T) {
	s := newTestSearchService(t)

	// an unvocalized root must still match the fully vocalized verse text
	response, err := s.Search("صبر", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	results := response.Search.Results
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].VerseKey != "1:1" {
		t.Errorf("expected verse 1:1, got %s", results[0].VerseKey)
	}
}

func TestSearchMatchesRawArabic(t *testing.T) {
	s := newTestSearchService(t)

	response, err := s.Search("الم", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	results := response.Search.Results
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	if results[0].VerseKey != "1:3" {
		t.Errorf("expected verse 1:3, got %s", results[0].VerseKey)
	}
}

func TestSearchIsCaseInsensitiveAndHighlights(t *testing.T) {
	s := newTestSearchService(t)

	response, err := s.Search("SABAR", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	results := response.Search.Results
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// the highlighted text keeps the verse's original casing
	first := results[0].Translations[0].Text
	if first != "Mohonlah pertolongan dengan <em>sabar</em> dan shalat" {
		t.Errorf("unexpected highlighted translation: %q", first)
	}

	second := results[1].Translations[0].Text
	if second != "Hanya <em>sabar</em> saja" {
		t.Errorf("unexpected highlighted translation: %q", second)
	}
}

func TestSearchSkipsHighlightingShortTerms(t *testing.T) {
	s := newTestSearchService(t)

	// "ya" still participates in matching but is too short to highlight
	response, err := s.Search("sabar ya", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	results := response.Search.Results
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	got := results[0].Translations[0].Text
	if got != "Hanya <em>sabar</em> saja" {
		t.Errorf("expected only the long term to be highlighted, got %q", got)
	}
}

func TestSearchRegexMetacharactersAreSafe(t *testing.T) {
	s := newTestSearchService(t)

	response, err := s.Search("sab(ar?", 1, 20)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	if response.Search.TotalResults != 0 {
		t.Errorf("expected no results, got %d", response.Search.TotalResults)
	}
}

func TestSearchEmptyQueryTouchesNothing(t *testing.T) {
	tracking := newTrackingFS(searchFixtureFS(t))
	s := NewSearchService(corpus.NewStore(tracking), nil, testLogger())

	for _, query := range []string{"", "   ", "\t\n"} {
		response, err := s.Search(query, 1, 20)
		if err != nil {
			t.Fatalf("Search(%q) returned an error: %v", query, err)
		}

		search := response.Search
		if search.TotalResults != 0 || search.CurrentPage != 1 || len(search.Results) != 0 {
			t.Errorf("Search(%q): expected an empty zero-valued response, got %+v", query, search)
		}
	}

	if n := tracking.openCount(testSearchDataPath); n != 0 {
		t.Errorf("expected blank queries to skip the corpus entirely, got %d reads", n)
	}
}

func TestSearchPagination(t *testing.T) {
	s := newTestSearchService(t)

	page1, err := s.Search("cahaya", 1, 2)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	if page1.Search.TotalResults != 5 || page1.Search.TotalPages != 3 {
		t.Fatalf("unexpected totals: %+v", page1.Search)
	}

	page2, err := s.Search("cahaya", 2, 2)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	page3, err := s.Search("cahaya", 3, 2)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	var keys []string
	for _, results := range [][]string{
		resultKeys(page1.Search.Results),
		resultKeys(page2.Search.Results),
		resultKeys(page3.Search.Results),
	} {
		keys = append(keys, results...)
	}

	expected := []string{"2:1", "2:2", "2:3", "2:4", "2:5"}
	if !reflect.DeepEqual(keys, expected) {
		t.Errorf("pages do not stitch back into the full result set: %v", keys)
	}

	// a page past the end is empty, not an error
	page4, err := s.Search("cahaya", 4, 2)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}
	if len(page4.Search.Results) != 0 {
		t.Errorf("expected an empty page past the end, got %d results", len(page4.Search.Results))
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	s := newTestSearchService(t)

	first, err := s.Search("cahaya", 1, 2)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	second, err := s.Search("cahaya", 1, 2)
	if err != nil {
		t.Fatalf("Search() returned an error on second call: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected repeated identical queries to return identical responses")
	}
}

func TestSearchDefaultsPageAndSize(t *testing.T) {
	s := newTestSearchService(t)

	response, err := s.Search("cahaya", 0, 0)
	if err != nil {
		t.Fatalf("Search() returned an error: %v", err)
	}

	search := response.Search
	if search.CurrentPage != 1 {
		t.Errorf("expected current_page to default to 1, got %d", search.CurrentPage)
	}
	if len(search.Results) != 5 || search.TotalPages != 1 {
		t.Errorf("expected all 5 results on the default page size, got %+v", search)
	}
}

func resultKeys(results []data.SearchResult) []string {
	keys := make([]string, 0, len(results))
	for _, r := range results {
		keys = append(keys, r.VerseKey)
	}
	return keys
}

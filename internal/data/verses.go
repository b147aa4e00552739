package data

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTranslationID is the resource id of the Indonesian Kemenag
// translation, the only translation carried by the local sources.
const DefaultTranslationID = 33

// MushafMode selects which underlying text source supplies the Arabic text
// and translation for a verse identity.
type MushafMode string

const (
	ModeKemenag MushafMode = "kemenag"
	ModeUthmani MushafMode = "uthmani"
)

// ParseMushafMode maps a query-string value to a mode, defaulting to
// kemenag for empty or unknown values the way the original reader app does.
func ParseMushafMode(s string) MushafMode {
	if MushafMode(s) == ModeUthmani {
		return ModeUthmani
	}
	return ModeKemenag
}

// VerseRef is the immutable (chapter, verse_number) pair addressing one
// verse regardless of which text source renders it.
type VerseRef struct {
	Chapter int
	Verse   int
}

func (r VerseRef) Key() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

// NumericID derives the single numeric id consumers expect: the chapter
// and verse digits concatenated, e.g. 2:255 -> 2255.
func (r VerseRef) NumericID() int {
	id, _ := strconv.Atoi(fmt.Sprintf("%d%d", r.Chapter, r.Verse))
	return id
}

// ParseVerseKey parses a "chapter:verse" key.
func ParseVerseKey(key string) (VerseRef, error) {
	chapterPart, versePart, found := strings.Cut(key, ":")
	if !found {
		return VerseRef{}, fmt.Errorf("invalid verse key %q", key)
	}

	chapter, err := strconv.Atoi(chapterPart)
	if err != nil {
		return VerseRef{}, fmt.Errorf("invalid verse key %q", key)
	}

	verse, err := strconv.Atoi(versePart)
	if err != nil {
		return VerseRef{}, fmt.Errorf("invalid verse key %q", key)
	}

	return VerseRef{Chapter: chapter, Verse: verse}, nil
}

type Translation struct {
	ID         int    `json:"id"`
	ResourceID int    `json:"resource_id"`
	Text       string `json:"text"`
}

// Word is a placeholder for word-by-word data, which the local sources do
// not provide. Verses always carry an empty words list so the shape stays
// compatible with consumers that expect it.
type Word struct{}

type Verse struct {
	ID           int           `json:"id"`
	VerseNumber  int           `json:"verse_number"`
	VerseKey     string        `json:"verse_key"`
	TextUthmani  string        `json:"text_uthmani"`
	JuzNumber    int           `json:"juz_number"`
	PageNumber   int           `json:"page_number"`
	Translations []Translation `json:"translations"`
	Words        []Word        `json:"words"`
}

type Pagination struct {
	PerPage      int  `json:"per_page"`
	CurrentPage  int  `json:"current_page"`
	NextPage     *int `json:"next_page"`
	TotalPages   int  `json:"total_pages"`
	TotalRecords int  `json:"total_records"`
}

type VersesResponse struct {
	Verses     []Verse    `json:"verses"`
	Pagination Pagination `json:"pagination"`
}

// NewVersesResponse wraps a full verse list in the single-page pagination
// envelope used by all structural (chapter/juz/page) responses.
func NewVersesResponse(verses []Verse) *VersesResponse {
	return &VersesResponse{
		Verses: verses,
		Pagination: Pagination{
			PerPage:      len(verses),
			CurrentPage:  1,
			NextPage:     nil,
			TotalPages:   1,
			TotalRecords: len(verses),
		},
	}
}

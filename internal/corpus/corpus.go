// Package corpus loads the offline Quran datasets and memoizes them in
// memory for the process lifetime. All sources are static local JSON files;
// nothing in this package writes or invalidates.
package corpus

import (
	"rizkifajar/quran-api/internal/data"
)

// SearchVerse is one verse of the searchable dataset: uthmani-style Arabic
// text plus the Indonesian translation.
type SearchVerse struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// SearchChapter is one chapter of the searchable dataset, carrying the
// chapter metadata and its ordered verses.
type SearchChapter struct {
	ID              int           `json:"id"`
	Name            string        `json:"name"`
	Transliteration string        `json:"transliteration"`
	Translation     string        `json:"translation"`
	TotalVerses     int           `json:"total_verses"`
	Type            string        `json:"type"`
	Verses          []SearchVerse `json:"verses"`
}

// Chapter converts a dataset chapter into the metadata shape served by the
// chapters endpoint. The dataset has no revelation-order or page data, so
// those stay at their placeholder values.
func (c SearchChapter) Chapter() data.Chapter {
	return data.Chapter{
		ID:              c.ID,
		NameSimple:      c.Transliteration,
		NameComplex:     c.Transliteration,
		NameArabic:      c.Name,
		VersesCount:     c.TotalVerses,
		RevelationPlace: c.Type,
		RevelationOrder: 0,
		BismillahPre:    false,
		Pages:           []int{},
		TranslatedName:  TranslatedNameFor(c.Translation),
	}
}

// TranslatedNameFor wraps a translated chapter name in the fixed-language
// envelope used by the chapter metadata shape.
func TranslatedNameFor(name string) data.TranslatedName {
	return data.TranslatedName{
		LanguageName: "indonesian",
		Name:         name,
	}
}

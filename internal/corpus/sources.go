package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"rizkifajar/quran-api/internal/arabic"
	"rizkifajar/quran-api/internal/data"
)

const (
	searchDataPath     = "quran-json/dist/quran_id.json"
	uthmaniChapterPath = "quran-json/dist/chapters/id/%d.json"
	kemenagChapterPath = "Al-Quran-JSON-Indonesia-Kemenag/Surat/%d.json"
)

// RawVerse is the canonical record both source formats are adapted into at
// load time, so hydration and rendering never have to care which format a
// chapter came from. Juz and Page are zero when the source does not carry
// structural metadata.
type RawVerse struct {
	Number          int
	ArabicText      string
	TranslationText string
	Juz             int
	Page            int
}

// TextSource supplies one chapter's verses for one mushaf mode.
type TextSource interface {
	ChapterVerses(chapterID int) ([]RawVerse, error)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

// kemenagSource reads the Indonesian Ministry of Religious Affairs edition:
// one file per chapter, keyed by aya_number/aya_text, with structural juz
// and page metadata. Translation text arrives with embedded HTML markup
// which is stripped on load; the Arabic text has the known fatha+small-alif
// double-mark artifact which is collapsed on load.
type kemenagSource struct {
	fsys fs.FS
}

type kemenagVerse struct {
	AyaNumber          int    `json:"aya_number"`
	AyaText            string `json:"aya_text"`
	TranslationAyaText string `json:"translation_aya_text"`
	JuzID              int    `json:"juz_id"`
	PageNumber         int    `json:"page_number"`
}

type kemenagChapter struct {
	Data []kemenagVerse `json:"data"`
}

func (s kemenagSource) ChapterVerses(chapterID int) ([]RawVerse, error) {
	var chapter kemenagChapter
	err := readJSON(s.fsys, fmt.Sprintf(kemenagChapterPath, chapterID), &chapter)
	if err != nil {
		return nil, err
	}

	verses := make([]RawVerse, 0, len(chapter.Data))
	for _, v := range chapter.Data {
		verses = append(verses, RawVerse{
			Number:          v.AyaNumber,
			ArabicText:      arabic.NormalizeQuranText(v.AyaText),
			TranslationText: htmlTagPattern.ReplaceAllString(v.TranslationAyaText, ""),
			Juz:             v.JuzID,
			Page:            v.PageNumber,
		})
	}

	return verses, nil
}

// uthmaniSource reads the Madinah-press edition: one file per chapter,
// keyed by id/text/translation, with no structural metadata.
type uthmaniSource struct {
	fsys fs.FS
}

type uthmaniVerse struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

type uthmaniChapter struct {
	Verses []uthmaniVerse `json:"verses"`
}

func (s uthmaniSource) ChapterVerses(chapterID int) ([]RawVerse, error) {
	var chapter uthmaniChapter
	err := readJSON(s.fsys, fmt.Sprintf(uthmaniChapterPath, chapterID), &chapter)
	if err != nil {
		return nil, err
	}

	verses := make([]RawVerse, 0, len(chapter.Verses))
	for _, v := range chapter.Verses {
		verses = append(verses, RawVerse{
			Number:          v.ID,
			ArabicText:      v.Text,
			TranslationText: v.Translation,
		})
	}

	return verses, nil
}

// sourceFor selects the concrete text source for a mushaf mode.
func sourceFor(fsys fs.FS, mode data.MushafMode) TextSource {
	if mode == data.ModeUthmani {
		return uthmaniSource{fsys: fsys}
	}
	return kemenagSource{fsys: fsys}
}

func readJSON(fsys fs.FS, path string, dst any) error {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", data.ErrRecordNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", data.ErrDataUnavailable, path, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", data.ErrDataFormat, path, err)
	}

	return nil
}

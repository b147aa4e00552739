// Package pageindex resolves physical mushaf page layouts against the
// quran.com API, the canonical source for the 604-page boundaries. Only
// verse identities and structural metadata are consumed from it; verse
// text always comes from the local sources.
package pageindex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rizkifajar/quran-api/internal/data"
	"rizkifajar/quran-api/internal/service"
)

const DefaultBaseURL = "https://api.quran.com/api/v4"

type QuranComIndex struct {
	baseURL string
	client  *http.Client
}

func NewQuranComIndex(baseURL string, client *http.Client) *QuranComIndex {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &QuranComIndex{
		baseURL: baseURL,
		client:  client,
	}
}

type pageVerse struct {
	VerseKey   string `json:"verse_key"`
	JuzNumber  int    `json:"juz_number"`
	PageNumber int    `json:"page_number"`
}

type pageResponse struct {
	Verses []pageVerse `json:"verses"`
}

// PageVerses returns the ordered verse identities on one physical page.
func (q *QuranComIndex) PageVerses(ctx context.Context, pageID int) ([]service.PageVerse, error) {
	url := fmt.Sprintf("%s/verses/by_page/%d?language=id&words=false&translations=%d",
		q.baseURL, pageID, data.DefaultTranslationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: page layout request: %v", data.ErrDataUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: page layout service returned status %d", data.ErrDataUnavailable, res.StatusCode)
	}

	var body pageResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: page layout response: %v", data.ErrDataFormat, err)
	}

	verses := make([]service.PageVerse, 0, len(body.Verses))
	for _, v := range body.Verses {
		ref, err := data.ParseVerseKey(v.VerseKey)
		if err != nil {
			return nil, fmt.Errorf("%w: page layout response: %v", data.ErrDataFormat, err)
		}
		verses = append(verses, service.PageVerse{
			Ref:  ref,
			Juz:  v.JuzNumber,
			Page: v.PageNumber,
		})
	}

	return verses, nil
}

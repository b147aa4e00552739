package data

type SearchTranslation struct {
	Text         string `json:"text"`
	ResourceID   int    `json:"resource_id"`
	Name         string `json:"name"`
	LanguageName string `json:"language_name"`
}

type SearchResult struct {
	VerseKey     string              `json:"verse_key"`
	VerseID      int                 `json:"verse_id"`
	Text         string              `json:"text"`
	Translations []SearchTranslation `json:"translations"`
}

type SearchPage struct {
	Query        string         `json:"query"`
	TotalResults int            `json:"total_results"`
	CurrentPage  int            `json:"current_page"`
	TotalPages   int            `json:"total_pages"`
	Results      []SearchResult `json:"results"`
}

type SearchResponse struct {
	Search SearchPage `json:"search"`
}

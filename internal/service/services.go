package service

import (
	"context"
	"log/slog"

	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/data"
)

// ResponseCache stores serialized responses keyed by request shape. A nil
// cache is treated as a permanent miss, so callers can run without Redis.
type ResponseCache interface {
	GetResponse(key string) ([]byte, error)
	SetResponse(key string, payload []byte) error
}

// PageVerse is a bare verse identity plus the structural metadata the page
// layout source knows about it.
type PageVerse struct {
	Ref  data.VerseRef
	Juz  int
	Page int
}

// PageIndex resolves which verses fall on a physical mushaf page. The
// 604-page layout is defined by a canonical external source and is not
// derivable from the local datasets, so it is an injected capability.
type PageIndex interface {
	PageVerses(ctx context.Context, pageID int) ([]PageVerse, error)
}

// Service contains all business logic services
type Service struct {
	Quran  *QuranService
	Search *SearchService
}

// NewServices creates all services with their dependencies
// Centralize service creation
func NewServices(
	store *corpus.Store,
	pageIndex PageIndex,
	cache ResponseCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		Quran:  NewQuranService(store, pageIndex, cache, logger),
		Search: NewSearchService(store, cache, logger),
	}
}

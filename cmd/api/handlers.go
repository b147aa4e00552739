package main

import "rizkifajar/quran-api/internal/service"

// Handlers contains all HTTP methods
// This is specific to the HTTP API entry point
type Handlers struct {
	Quran  *QuranHandler
	Search *SearchHandler
}

// NewHandlers creates all HTTP handlers
// Handlers are tied to HTTP - not reusable like services
func NewHandlers(app *application, services *service.Service) *Handlers {
	return &Handlers{
		Quran:  NewQuranHandler(app, services.Quran),
		Search: NewSearchHandler(app, services.Search),
	}
}

package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rizkifajar/quran-api/internal/data"
	"rizkifajar/quran-api/internal/validator"
)

type SearchServiceInterface interface {
	Search(query string, page, perPage int) (*data.SearchResponse, error)
}

type SearchHandler struct {
	app           *application
	searchService SearchServiceInterface
}

func NewSearchHandler(app *application, searchService SearchServiceInterface) *SearchHandler {
	return &SearchHandler{
		app:           app,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/search", h.app.generalRateLimit(h.Search))
}

// @Summary Search verses
// @Description Scans the offline corpus for verses where every query term matches the translation, the raw Arabic text, or the diacritic-stripped Arabic text. Matched terms in translations are wrapped in <em> markers.
// @Tags Search
// @Produce json
// @Param q query string true "Free-text query; terms are whitespace-separated"
// @Param page query int false "Page number (minimum: 1)" minimum(1) default(1)
// @Param per_page query int false "Results per page (1-100)" minimum(1) default(20)
// @Success 200 {object} data.SearchResponse
// @Failure 422 {object} object{error=object} "Invalid pagination parameters"
// @Failure 500 {object} object{error=string} "Corpus dataset unavailable"
// @Router /v1/search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	filters, err := h.app.readPaginationParams(r)
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	filters.Validate(v)
	if !v.Valid() {
		h.app.failedValidationResponse(w, r, v.Errors)
		return
	}

	response, err := h.searchService.Search(query, filters.Page, filters.PageSize)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"search": response.Search}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

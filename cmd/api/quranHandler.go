package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"rizkifajar/quran-api/internal/data"
)

type QuranServiceInterface interface {
	GetChapters() (*data.ChaptersResponse, error)
	GetChapterVerses(chapterID int, mode data.MushafMode) (*data.VersesResponse, error)
	GetJuzVerses(juzID int, mode data.MushafMode) (*data.VersesResponse, error)
	GetPageVerses(ctx context.Context, pageID int, mode data.MushafMode) (*data.VersesResponse, error)
}

type QuranHandler struct {
	app          *application
	quranService QuranServiceInterface
}

func NewQuranHandler(app *application, quranService QuranServiceInterface) *QuranHandler {
	return &QuranHandler{
		app:          app,
		quranService: quranService,
	}
}

func (h *QuranHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/v1/chapters", h.app.generalRateLimit(h.GetChapters))
	router.HandlerFunc(http.MethodGet, "/v1/chapters/:chapterId/verses", h.app.generalRateLimit(h.GetChapterVerses))
	router.HandlerFunc(http.MethodGet, "/v1/juzs/:juzId/verses", h.app.generalRateLimit(h.GetJuzVerses))
	router.HandlerFunc(http.MethodGet, "/v1/pages/:pageId/verses", h.app.generalRateLimit(h.GetPageVerses))
}

func (h *QuranHandler) handleVersesError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		h.app.notFoundResponse(w, r)
	case errors.Is(err, data.ErrInvalidRange):
		h.app.badRequestResponse(w, r, err)
	default:
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary List all chapters
// @Description Returns metadata for all 114 chapters: names, verse counts, revelation place and the translated name.
// @Tags Chapters
// @Produce json
// @Success 200 {object} data.ChaptersResponse
// @Failure 500 {object} object{error=string} "Internal server error"
// @Router /v1/chapters [get]
func (h *QuranHandler) GetChapters(w http.ResponseWriter, r *http.Request) {
	response, err := h.quranService.GetChapters()
	if err != nil {
		h.handleVersesError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{"chapters": response.Chapters}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Get a chapter's verses
// @Description Returns the ordered verses of one chapter for the requested mushaf mode (kemenag or uthmani).
// @Tags Chapters, Verses
// @Produce json
// @Param chapterId path int true "Chapter id (1-114)"
// @Param mode query string false "Mushaf mode" Enums(kemenag, uthmani) default(kemenag)
// @Success 200 {object} data.VersesResponse
// @Failure 400 {object} object{error=string} "Invalid chapter id parameter"
// @Failure 404 {object} object{error=string} "Chapter id outside 1-114 or source missing"
// @Failure 500 {object} object{error=string} "Internal server error"
// @Router /v1/chapters/{chapterId}/verses [get]
func (h *QuranHandler) GetChapterVerses(w http.ResponseWriter, r *http.Request) {
	chapterID, err := h.app.readIDParam(r, "chapterId")
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	response, err := h.quranService.GetChapterVerses(chapterID, h.app.readMushafMode(r))
	if err != nil {
		h.handleVersesError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{
		"verses":     response.Verses,
		"pagination": response.Pagination,
	}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Get a juz's verses
// @Description Returns the ordered verses of one juz, spanning chapter boundaries where the juz does.
// @Tags Juz, Verses
// @Produce json
// @Param juzId path int true "Juz id (1-30)"
// @Param mode query string false "Mushaf mode" Enums(kemenag, uthmani) default(kemenag)
// @Success 200 {object} data.VersesResponse
// @Failure 400 {object} object{error=string} "Juz id outside 1-30"
// @Failure 500 {object} object{error=string} "Internal server error"
// @Router /v1/juzs/{juzId}/verses [get]
func (h *QuranHandler) GetJuzVerses(w http.ResponseWriter, r *http.Request) {
	juzID, err := h.app.readIDParam(r, "juzId")
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	response, err := h.quranService.GetJuzVerses(juzID, h.app.readMushafMode(r))
	if err != nil {
		h.handleVersesError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{
		"verses":     response.Verses,
		"pagination": response.Pagination,
	}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

// @Summary Get a page's verses
// @Description Returns the verses on one physical mushaf page. The page layout comes from the configured layout API; verse text comes from the local sources.
// @Tags Pages, Verses
// @Produce json
// @Param pageId path int true "Page id (1-604)"
// @Param mode query string false "Mushaf mode" Enums(kemenag, uthmani) default(kemenag)
// @Success 200 {object} data.VersesResponse
// @Failure 400 {object} object{error=string} "Page id outside 1-604"
// @Failure 500 {object} object{error=string} "Page layout service unavailable"
// @Router /v1/pages/{pageId}/verses [get]
func (h *QuranHandler) GetPageVerses(w http.ResponseWriter, r *http.Request) {
	pageID, err := h.app.readIDParam(r, "pageId")
	if err != nil {
		h.app.badRequestResponse(w, r, err)
		return
	}

	response, err := h.quranService.GetPageVerses(r.Context(), pageID, h.app.readMushafMode(r))
	if err != nil {
		h.handleVersesError(w, r, err)
		return
	}

	err = h.app.writeJSON(w, http.StatusOK, envelope{
		"verses":     response.Verses,
		"pagination": response.Pagination,
	}, nil)
	if err != nil {
		h.app.serverErrorResponse(w, r, err)
	}
}

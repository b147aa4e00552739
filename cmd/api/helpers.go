package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"rizkifajar/quran-api/internal/data"
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		return err
	}

	return nil
}

func (app *application) readIDParam(r *http.Request, idName string) (int, error) {
	param := httprouter.ParamsFromContext(r.Context())

	id, err := strconv.Atoi(param.ByName(idName))
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + idName + " parameter")
	}
	return id, nil
}

// readMushafMode extracts the mushaf mode from the query string, falling
// back to kemenag the way the reader UI does.
func (app *application) readMushafMode(r *http.Request) data.MushafMode {
	return data.ParseMushafMode(r.URL.Query().Get("mode"))
}

func (app *application) readPaginationParams(r *http.Request) (data.Filters, error) {
	query := r.URL.Query()

	page := 1 // default
	if query.Has("page") {
		var err error
		page, err = strconv.Atoi(query.Get("page"))
		if err != nil || page < 1 {
			return data.Filters{}, errors.New("page must be a positive integer")
		}
	}

	pageSize := 20 // default
	if query.Has("per_page") {
		var err error
		pageSize, err = strconv.Atoi(query.Get("per_page"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			return data.Filters{}, errors.New("per_page must be between 1 and 100")
		}
	}

	return data.Filters{Page: page, PageSize: pageSize}, nil
}

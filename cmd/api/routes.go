package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger"
)

func (app *application) routes(handlers *Handlers) http.Handler {
	router := httprouter.New()

	router.RedirectFixedPath = false
	router.RedirectTrailingSlash = false

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	handlers.Quran.RegisterRoutes(router)
	handlers.Search.RegisterRoutes(router)

	router.Handler(http.MethodGet, "/swagger/*any", httpSwagger.WrapHandler)

	return app.recoverPanic(app.requestID(app.enableCORS(router)))
}

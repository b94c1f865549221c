package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	handle := func(method, path string, h http.HandlerFunc) {
		router.Handler(method, path, app.instrument(path, h))
	}

	handle(http.MethodGet, "/", app.homeHandler)
	handle(http.MethodGet, "/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.Handler())

	handle(http.MethodGet, "/videos", app.listVideosHandler)
	handle(http.MethodPost, "/videos", app.createVideoHandler)
	handle(http.MethodGet, "/videos/:id", app.showVideoHandler)
	handle(http.MethodPut, "/videos/:id", app.updateVideoHandler)
	handle(http.MethodDelete, "/videos/:id", app.deleteVideoHandler)

	if app.config.env != "production" {
		handle(http.MethodDelete, "/testing/all-data", app.deleteAllDataHandler)
	}

	return app.recoverPanic(app.requestID(app.logRequest(app.rateLimit(router))))
}

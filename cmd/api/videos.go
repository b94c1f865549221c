package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hafizmfadli/go-video/internal/data"
	"github.com/hafizmfadli/go-video/internal/validator"
)

// listVideosHandler for the "GET /videos" endpoint.
func (app *application) listVideosHandler(w http.ResponseWriter, r *http.Request) {
	videos, err := app.models.Videos.GetAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, videos, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createVideoHandler for the "POST /videos" endpoint.
func (app *application) createVideoHandler(w http.ResponseWriter, r *http.Request) {
	input := app.readPayload(w, r)

	v := validator.New()

	in := data.ValidateVideoCreate(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	video := data.NewVideo(in, time.Now())

	err := app.models.Videos.Insert(video)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// Include a Location header to let the client know which URL they can
	// find the newly-created resource at.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/videos/%d", video.ID))

	err = app.writeJSON(w, http.StatusCreated, video, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showVideoHandler for the "GET /videos/:id" endpoint.
func (app *application) showVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	video, err := app.models.Videos.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, video, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateVideoHandler for the "PUT /videos/:id" endpoint. The body is
// validated before the id is looked at, so a bad payload is reported as 400
// even when the video doesn't exist.
func (app *application) updateVideoHandler(w http.ResponseWriter, r *http.Request) {
	input := app.readPayload(w, r)

	v := validator.New()

	in := data.ValidateVideoUpdate(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	video, err := app.models.Videos.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	in.Apply(video)

	err = app.models.Videos.Update(video)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deleteVideoHandler for the "DELETE /videos/:id" endpoint.
func (app *application) deleteVideoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.models.Videos.Delete(id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

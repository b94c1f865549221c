package main

import "net/http"

// deleteAllDataHandler for the "DELETE /testing/all-data" endpoint. It is
// only routed outside production and lets test harnesses start from an
// empty store.
func (app *application) deleteAllDataHandler(w http.ResponseWriter, r *http.Request) {
	err := app.models.Videos.DeleteAll()
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

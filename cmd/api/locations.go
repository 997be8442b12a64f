package main

import (
	"net/http"

	"tourister/internal/store"
)

type RecordLocationPayload struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// recordLocationHandler godoc
//
//	@Summary		Record device location
//	@Description	Stores the current user's latest position. The app posts a fresh fix every few seconds while the map is open; the proximity notifier sweeps these fixes against stored attractions.
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	RecordLocationPayload	true	"Current coordinates"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		401	{object}	error	"Unauthorized"
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/locations [post]
func (app *application) recordLocationHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload RecordLocationPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fix := &store.LocationFix{
		UserID:    user.ID,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}

	if err := app.store.Locations.UpsertFix(r.Context(), fix); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

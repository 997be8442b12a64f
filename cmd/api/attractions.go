package main

import (
	"fmt"
	"net/http"
	"strconv"

	"tourister/internal/store"

	"github.com/go-chi/chi/v5"
)

// pointsForAttraction is credited to a contributor for each attraction added.
const pointsForAttraction = 10

type CreateAttractionPayload struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description" validate:"required,max=2000"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	Category     string  `json:"category" validate:"required"`
	TicketPrice  string  `json:"ticket_price" validate:"omitempty,max=100"`
	WorkingHours string  `json:"working_hours" validate:"omitempty,max=255"`
}

// createAttractionHandler godoc
//
//	@Summary		Create an attraction
//	@Description	Adds a new attraction contributed by the current user and credits contribution points
//	@Tags			attractions
//	@Accept			mpfd
//	@Produce		json
//	@Param			name			formData	string	true	"Attraction name"
//	@Param			description		formData	string	true	"Description"
//	@Param			latitude		formData	number	true	"Latitude"
//	@Param			longitude		formData	number	true	"Longitude"
//	@Param			category		formData	string	true	"Category"
//	@Param			ticket_price	formData	string	false	"Ticket price"
//	@Param			working_hours	formData	string	false	"Working hours"
//	@Param			photos			formData	file	false	"Attraction photos"
//	@Success		201				{object}	store.Attraction
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/attractions [post]
func (app *application) createAttractionHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, size limit is 10MB"))
		return
	}

	lat, err := strconv.ParseFloat(r.FormValue("latitude"), 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid latitude value: %w", err))
		return
	}
	lon, err := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid longitude value: %w", err))
		return
	}

	payload := CreateAttractionPayload{
		Name:         r.FormValue("name"),
		Description:  r.FormValue("description"),
		Latitude:     lat,
		Longitude:    lon,
		Category:     r.FormValue("category"),
		TicketPrice:  r.FormValue("ticket_price"),
		WorkingHours: r.FormValue("working_hours"),
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !store.IsValidCategory(payload.Category) {
		app.badRequestResponse(w, r, fmt.Errorf("unknown category: %s", payload.Category))
		return
	}

	attraction := &store.Attraction{
		Name:          payload.Name,
		Description:   payload.Description,
		Latitude:      payload.Latitude,
		Longitude:     payload.Longitude,
		Category:      payload.Category,
		TicketPrice:   payload.TicketPrice,
		WorkingHours:  payload.WorkingHours,
		AddedByUserID: user.ID,
	}

	ctx := r.Context()

	if err := app.store.Attractions.Create(ctx, attraction); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	// Photos are uploaded after the row exists so the attraction ID can
	// drive the Cloudinary public IDs.
	if files := r.MultipartForm.File["photos"]; len(files) > 0 {
		urls, err := app.uploadImagesWithAttractionID(files, attraction.ID)
		if err != nil {
			app.logger.Errorw("failed to upload attraction photos", "attraction_id", attraction.ID, "error", err)
		} else {
			for _, url := range urls {
				if err := app.store.Attractions.AddPhotoURL(ctx, attraction.ID, url); err != nil {
					app.logger.Errorw("failed to save photo URL", "attraction_id", attraction.ID, "error", err)
					continue
				}
				attraction.PhotoURLs = append(attraction.PhotoURLs, url)
			}
		}
	}

	// The attraction is already committed; a failed points credit should
	// not fail the request.
	if err := app.store.Users.AwardPoints(ctx, user.ID, pointsForAttraction); err != nil {
		app.logger.Errorw("failed to award contribution points", "user_id", user.ID, "error", err)
	}

	if err := app.jsonResponse(w, http.StatusCreated, attraction); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listAttractionsHandler godoc
//
//	@Summary		List attractions
//	@Description	Returns all attractions, optionally filtered by category, minimum rating, creation date and radius around a point
//	@Tags			attractions
//	@Produce		json
//	@Param			category	query		string	false	"Category name"
//	@Param			min_rating	query		number	false	"Minimum average rating (0-5)"
//	@Param			date		query		string	false	"Creation date (YYYY-MM-DD)"
//	@Param			lat			query		number	false	"Filter center latitude"
//	@Param			lon			query		number	false	"Filter center longitude"
//	@Param			radius		query		number	false	"Radius around the center in kilometers"
//	@Success		200			{array}		store.Attraction
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/attractions [get]
func (app *application) listAttractionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := store.AttractionFilter{}.Parse(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	attractions, err := app.store.Attractions.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, filter.Apply(attractions)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAttractionHandler godoc
//
//	@Summary		Get an attraction
//	@Description	Returns a single attraction by ID
//	@Tags			attractions
//	@Produce		json
//	@Param			attractionID	path		int	true	"Attraction ID"
//	@Success		200				{object}	store.Attraction
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error	"Attraction not found"
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/attractions/{attractionID} [get]
func (app *application) getAttractionHandler(w http.ResponseWriter, r *http.Request) {
	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	attraction, err := app.store.Attractions.GetByID(r.Context(), attractionID)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, attraction); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadAttractionPhotoHandler godoc
//
//	@Summary		Upload attraction photos
//	@Description	Uploads one or more photos for an existing attraction
//	@Tags			attractions
//	@Accept			mpfd
//	@Produce		json
//	@Param			attractionID	path		int		true	"Attraction ID"
//	@Param			photos			formData	file	true	"Photo files"
//	@Success		200				{array}		string	"Uploaded photo URLs"
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error	"Attraction not found"
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/attractions/{attractionID}/photos [post]
func (app *application) uploadAttractionPhotoHandler(w http.ResponseWriter, r *http.Request) {
	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.store.Attractions.GetByID(r.Context(), attractionID); err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("unable to parse form, size limit is 10MB"))
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		app.badRequestResponse(w, r, fmt.Errorf("no photos provided"))
		return
	}

	urls, err := app.uploadImagesWithAttractionID(files, attractionID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	for _, url := range urls {
		if err := app.store.Attractions.AddPhotoURL(r.Context(), attractionID, url); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, urls); err != nil {
		app.internalServerError(w, r, err)
	}
}

type DeletePhotoPayload struct {
	PhotoURL string `json:"photo_url" validate:"required,url"`
}

// deleteAttractionPhotoHandler godoc
//
//	@Summary		Delete an attraction photo
//	@Description	Removes a photo URL from an attraction and deletes the asset from Cloudinary
//	@Tags			attractions
//	@Accept			json
//	@Produce		json
//	@Param			attractionID	path	int					true	"Attraction ID"
//	@Param			payload			body	DeletePhotoPayload	true	"Photo URL to delete"
//	@Success		204
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/attractions/{attractionID}/photos [delete]
func (app *application) deleteAttractionPhotoHandler(w http.ResponseWriter, r *http.Request) {
	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload DeletePhotoPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Attractions.RemovePhotoURL(r.Context(), attractionID, payload.PhotoURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.deletePhotoFromCloudinary(payload.PhotoURL); err != nil {
		// DB already forgot the URL; the stray asset is only logged.
		app.logger.Errorw("failed to delete photo from Cloudinary", "attraction_id", attractionID, "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

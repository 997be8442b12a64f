package main

import (
	"net/http"
	"strconv"

	"tourister/internal/store"

	"github.com/go-chi/chi/v5"
)

// pointsForReview is credited to a user for each review submitted.
const pointsForReview = 5

type CreateReviewPayload struct {
	Rating  float64 `json:"rating" validate:"min=0,max=5"`
	Comment string  `json:"comment" validate:"omitempty,max=2000"`
}

// createReviewHandler godoc
//
//	@Summary		Submit a review
//	@Description	Submits a one-off rating for an attraction. Each user can review an attraction once; the attraction's running average is updated atomically.
//	@Tags			reviews
//	@Accept			json
//	@Produce		json
//	@Param			attractionID	path		int					true	"Attraction ID"
//	@Param			payload			body		CreateReviewPayload	true	"Rating and comment"
//	@Success		201				{object}	store.Review
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error	"Attraction not found"
//	@Failure		409				{object}	error	"User has already reviewed this attraction"
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/attractions/{attractionID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CreateReviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review := &store.Review{
		AttractionID: attractionID,
		UserID:       user.ID,
		Rating:       payload.Rating,
		Comment:      payload.Comment,
	}

	ctx := r.Context()

	if err := app.store.Reviews.Create(ctx, review); err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		case store.ErrDuplicateReview:
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// The review is already committed; a failed points credit should not
	// fail the request.
	if err := app.store.Users.AwardPoints(ctx, user.ID, pointsForReview); err != nil {
		app.logger.Errorw("failed to award review points", "user_id", user.ID, "error", err)
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAttractionReviewsHandler godoc
//
//	@Summary		List attraction reviews
//	@Description	Returns all reviews for an attraction, newest first, with reviewer name and avatar
//	@Tags			reviews
//	@Produce		json
//	@Param			attractionID	path		int	true	"Attraction ID"
//	@Success		200				{array}		store.Review
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Router			/attractions/{attractionID}/reviews [get]
func (app *application) getAttractionReviewsHandler(w http.ResponseWriter, r *http.Request) {
	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviews, err := app.store.Reviews.GetByAttraction(r.Context(), attractionID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, reviews); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMyReviewHandler godoc
//
//	@Summary		Get own review
//	@Description	Returns the current user's review of an attraction, if any
//	@Tags			reviews
//	@Produce		json
//	@Param			attractionID	path		int	true	"Attraction ID"
//	@Success		200				{object}	store.Review
//	@Failure		400				{object}	ErrorBadRequestResponse
//	@Failure		404				{object}	error	"No review yet"
//	@Failure		500				{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/attractions/{attractionID}/reviews/me [get]
func (app *application) getMyReviewHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	attractionID, err := strconv.ParseInt(chi.URLParam(r, "attractionID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := app.store.Reviews.GetUserReview(r.Context(), attractionID, user.ID)
	if err != nil {
		switch err {
		case store.ErrNotFound:
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

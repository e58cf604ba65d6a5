package main

import (
	"errors"
	"net/http"

	"github.com/moonhalo/blogapi/internal/common"
	"github.com/moonhalo/blogapi/internal/engagementservice"
	"github.com/moonhalo/blogapi/internal/mediaservice"
	"github.com/moonhalo/blogapi/internal/userservice"
)

func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// the comment body arrives as multipart form data so an image can ride
	// along with the content field
	r.Body = http.MaxBytesReader(w, r.Body, mediaservice.MaxImageSize+1_048_576)
	err = r.ParseMultipartForm(mediaservice.MaxImageSize)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	image, err := app.readImageFile(r, "image")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	claims := app.getClaimsContext(r)

	req := &engagementservice.CreateCommentRequest{
		BlogID:  blogID,
		Content: r.FormValue("content"),
		Image:   image,
	}

	comment, err := app.engagementService.CreateComment(r.Context(), req, claims)
	if err != nil {
		switch {
		case errors.Is(err, mediaservice.ErrInvalidImageType), errors.Is(err, mediaservice.ErrImageTooLarge):
			app.badRequestErrorResponse(w, r, err)
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidAuthenticationTokenResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	blogID, err := app.readIDParam(r, "blogId")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.engagementService.GetCommentsByBlogID(r.Context(), blogID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

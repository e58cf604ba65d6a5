package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/moonhalo/blogapi/internal/common"
	"github.com/moonhalo/blogapi/internal/mediaservice"
	"github.com/moonhalo/blogapi/internal/userservice"
)

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.GetUserByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	claims := app.getClaimsContext(r)
	if claims.UserID != id {
		app.unAuthorizedErrorResponse(w, r)
		return
	}

	var input userservice.UpdateProfileRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user, err := app.userService.UpdateProfile(r.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.conflictErrorResponse(w, r, "a user with this email address already exists")
		case errors.Is(err, userservice.ErrDuplicateUsername):
			app.conflictErrorResponse(w, r, "this username is already taken")
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (app *application) updatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input updatePasswordRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	claims := app.getClaimsContext(r)

	err = app.userService.UpdatePassword(r.Context(), claims.UserID, input.CurrentPassword, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrAuthenticationFailure):
			app.invalidCredentialsErrorResponse(w, r)
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "password updated"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateAvatarHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, mediaservice.MaxImageSize+1_048_576)
	err := r.ParseMultipartForm(mediaservice.MaxImageSize)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	image, err := app.readImageFile(r, "image")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	if image == nil {
		app.badRequestErrorResponse(w, r, errors.New("missing image file"))
		return
	}

	claims := app.getClaimsContext(r)

	url, err := app.mediaService.Upload(r.Context(), image, "avatars", fmt.Sprintf("%d", claims.UserID))
	if err != nil {
		switch {
		case errors.Is(err, mediaservice.ErrInvalidImageType), errors.Is(err, mediaservice.ErrImageTooLarge):
			app.badRequestErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	user, err := app.userService.UpdateAvatar(r.Context(), claims.UserID, url)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

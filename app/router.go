package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// auth
	router.HandlerFunc(http.MethodPost, "/v1/auth/sign-up", app.signUpHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/sign-in", app.signInHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/sign-out", app.signOutHandler)
	router.HandlerFunc(http.MethodGet, "/v1/auth/me", app.requireAuthUser(app.meHandler))
	router.HandlerFunc(http.MethodPut, "/v1/auth/me/password", app.requireAuthUser(app.updatePasswordHandler))
	router.HandlerFunc(http.MethodPost, "/v1/auth/me/avatar", app.requireAuthUser(app.updateAvatarHandler))

	// blog service
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.requireAuthUser(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/v1/tags", app.getTagsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:id", app.requireAuthUser(app.updateBlogHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id", app.requireAuthUser(app.deleteBlogHandler))

	// engagement service
	router.HandlerFunc(http.MethodPost, "/v1/blogs/like/:id", app.requireAuthUser(app.likeBlogHandler))
	router.HandlerFunc(http.MethodPost, "/v1/blogs/unlike/:id", app.requireAuthUser(app.unlikeBlogHandler))
	router.HandlerFunc(http.MethodPost, "/v1/comments/:blogId", app.requireAuthUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/comments/:blogId", app.getCommentsHandler)

	// user service
	router.HandlerFunc(http.MethodGet, "/v1/users/:id", app.getUserHandler)
	router.HandlerFunc(http.MethodGet, "/v1/users/:id/blogs", app.getBlogsByUserIdHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/:id", app.requireAuthUser(app.updateUserHandler))

	return app.recoverPanic(app.logRequest(app.rateLimit(app.authenticate(router))))
}

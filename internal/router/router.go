// Package router wires every endpoint to its handler and middleware chain.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-review-api/internal/handler"
	"github.com/iliyamo/movie-review-api/internal/middleware"
	"github.com/iliyamo/movie-review-api/internal/model"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Movies  *handler.MovieHandler
	Details *handler.ActorDetailsHandler
	Actors  *handler.ActorHandler
	Reviews *handler.ReviewHandler
}

// Register sets up all routes. Public reads carry the response cache when
// one is configured; protected routes are wrapped in JWT auth, and the
// admin surface additionally runs the permission voter.
func Register(e *echo.Echo, jwtSecret string, h Handlers, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	adminOnly := middleware.RequirePermission(model.PermissionAdmin)

	// Identity.
	e.POST("/users/register", h.Auth.Register)
	e.POST("/users/login", h.Auth.Login)

	users := e.Group("/users", middleware.JWTAuth(jwtSecret))
	users.GET("/me", h.Auth.Me)
	users.GET("", h.Users.List, adminOnly)
	users.GET("/:id", h.Users.Get, adminOnly)
	users.PATCH("/:id", h.Users.Update, adminOnly)
	users.PATCH("/approval/:id", h.Users.Approve, adminOnly)
	users.DELETE("/:id", h.Users.Delete, adminOnly)

	// Catalog, public reads.
	e.GET("/movies", h.Movies.List, cache)
	e.GET("/movies/:id", h.Movies.Get)
	e.GET("/movies/search/movie/:title", h.Movies.Search, cache)
	e.GET("/movies/search/actor/:name", h.Details.SearchByName)
	e.GET("/actor-details", h.Details.List)
	e.GET("/actor-details/:id", h.Details.Get)
	e.GET("/actors/:movieId", h.Actors.ActorsInMovie)
	e.GET("/actor/movies/:actorDetailsId", h.Actors.MoviesOfActor)

	// Catalog, admin writes.
	movies := e.Group("/movies", middleware.JWTAuth(jwtSecret), adminOnly)
	movies.POST("", h.Movies.Create)
	movies.PATCH("/:id", h.Movies.Update)
	movies.DELETE("/:id", h.Movies.Delete)

	details := e.Group("/actor-details", middleware.JWTAuth(jwtSecret), adminOnly)
	details.POST("", h.Details.Create)
	details.PATCH("/:id", h.Details.Update)
	details.DELETE("/:id", h.Details.Delete)

	actors := e.Group("/actors", middleware.JWTAuth(jwtSecret), adminOnly)
	actors.POST("", h.Actors.Create)
	actors.DELETE("/:id", h.Actors.Delete)

	// Reviews. The approved-per-movie read is the only public path.
	e.GET("/reviews/movie/:movieId", h.Reviews.ApprovedForMovie, cache)

	reviews := e.Group("/reviews", middleware.JWTAuth(jwtSecret))
	reviews.PUT("", h.Reviews.Submit)
	reviews.GET("/pending", h.Reviews.Pending, adminOnly)
	reviews.GET("/:userId", h.Reviews.ByUser, adminOnly)
	reviews.GET("/:movieId/myReview", h.Reviews.MyReview)
	reviews.PATCH("/:id", h.Reviews.Approve, adminOnly)
	reviews.DELETE("/:id", h.Reviews.Delete)
}

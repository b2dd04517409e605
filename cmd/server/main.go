package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/movie-review-api/internal/config"
	"github.com/iliyamo/movie-review-api/internal/database"
	"github.com/iliyamo/movie-review-api/internal/handler"
	"github.com/iliyamo/movie-review-api/internal/middleware"
	"github.com/iliyamo/movie-review-api/internal/queue"
	"github.com/iliyamo/movie-review-api/internal/repository"
	"github.com/iliyamo/movie-review-api/internal/router"
)

func main() {
	_ = godotenv.Load()
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()

	db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(ctx)
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.EnsureIndexes(ctx); err != nil {
			cancel()
			log.Fatal().Err(err).Msg("index bootstrap failed")
		}
		cancel()
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, response cache disabled")
	}
	cacheMW := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	details := repository.NewActorDetailsRepo(db)
	actors := repository.NewActorRepo(db)
	reviews := repository.NewReviewRepo(db)

	h := router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users),
		Users:   handler.NewUserHandler(users),
		Movies:  handler.NewMovieHandler(movies),
		Details: handler.NewActorDetailsHandler(details),
		Actors:  handler.NewActorHandler(actors, details, movies),
		Reviews: handler.NewReviewHandler(reviews, movies),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg.JWTSecret, h, cacheMW)

	go queue.StartAuditConsumer()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/Franklin-pro/simpo-planet-studio-bn/auth"
	"github.com/Franklin-pro/simpo-planet-studio-bn/config"
	"github.com/Franklin-pro/simpo-planet-studio-bn/db"
	"github.com/Franklin-pro/simpo-planet-studio-bn/handlers"
	"github.com/Franklin-pro/simpo-planet-studio-bn/models"
	"github.com/Franklin-pro/simpo-planet-studio-bn/storage"
	"github.com/Franklin-pro/simpo-planet-studio-bn/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const sessionCookieName = "token"

func sessionSecret() []byte {
	if config.SESSION_SECRET != "" {
		return []byte(config.SESSION_SECRET)
	}
	log.Warn().Msg("SESSION_SECRET not set, sessions won't survive a restart")
	return []byte(utils.Rand16BytesToBase62() + utils.Rand16BytesToBase62())
}

func corsConfig() cors.Config {
	result := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := config.CORSOrigins()
	if slices.Contains(origins, "*") {
		// credentials need the origin echoed back, a literal "*" is refused by browsers
		result.AllowOriginFunc = func(string) bool { return true }
	} else {
		result.AllowOrigins = origins
	}
	return result
}

func main() {
	utils.InitLogger(config.DEBUG_MODE)
	if err := db.Init(); err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := models.Init(); err != nil {
		log.Fatal().Err(err).Msg("models")
	}
	if err := storage.Init(); err != nil {
		log.Fatal().Err(err).Msg("media storage")
	}

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger)
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(corsConfig()))

	sessionStore := gormsessions.NewStore(db.Instance, true, sessionSecret())
	sessionStore.Options(auth.Options(config.SESSION_MAX_AGE))
	router.Use(sessions.Sessions(sessionCookieName, sessionStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/"})))
	}
	handlers.Routes(router)

	if config.TLS_DOMAINS != "" {
		err := autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
		log.Fatal().Err(err).Msg("server stopped")
	}

	server := &http.Server{
		Addr:              config.BIND_ADDRESS,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("address", config.BIND_ADDRESS).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), config.SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	intcache "shuttle/internal/cache"
	intconfig "shuttle/internal/config"
	router "shuttle/internal/http"
	"shuttle/internal/http/handlers"
	"shuttle/internal/services"
	"shuttle/internal/tracking"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	// Redis is optional: reports fall back to the database and tracking
	// keeps broadcasting without the position store.
	appCache, err := intcache.New(env.RedisURL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without cache")
	}

	notifier := services.NewNotifier(env)
	hub := tracking.NewHub(appCache)

	handlers.Configure(env, appCache, hub, notifier)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", env.AppAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("shutdown failed")
	}

	log.Info("server stopped")
}

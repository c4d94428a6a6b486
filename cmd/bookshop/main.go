package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkarlsson/bookshop/internal/auth"
	"github.com/mkarlsson/bookshop/internal/cart"
	"github.com/mkarlsson/bookshop/internal/catalog"
	"github.com/mkarlsson/bookshop/internal/config"
	"github.com/mkarlsson/bookshop/internal/events"
	"github.com/mkarlsson/bookshop/internal/session"
	"github.com/mkarlsson/bookshop/internal/store"
	"github.com/mkarlsson/bookshop/internal/web"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	must(err)
	defer st.Close()

	if cfg.SeedOnStart {
		must(st.SeedBooks(context.Background()))
		log.Info().Msg("seeded starter catalog")
	}

	// Events are best effort: without a broker the shop still sells
	// books.
	var pub *events.Publisher
	if cfg.RabbitURL != "" {
		pub, err = events.NewPublisher(cfg.RabbitURL, cfg.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbit unavailable, running without events")
			pub = nil
		}
		defer pub.Close()
	}

	sessions := session.NewStore()
	catalogSvc := catalog.New(st)
	authSvc := auth.New(st)
	var ev cart.Events
	if pub != nil {
		ev = pub
	}
	cartSvc := cart.New(st, ev, cfg.DeliveryDays)

	srv := web.NewServer(cfg, st, sessions, catalogSvc, cartSvc, authSvc)
	httpSrv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn().Msg("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

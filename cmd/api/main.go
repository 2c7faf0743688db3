package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"boardhub.org/internal/board"
	"boardhub.org/internal/config"
	"boardhub.org/internal/httpapi"
	"boardhub.org/internal/identity"
	"boardhub.org/internal/obs"
	"boardhub.org/internal/store/memory"
	"boardhub.org/internal/store/pg"
	"boardhub.org/internal/token"
)

var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	tokens, err := token.NewService(cfg.AuthSecret)
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	var (
		identityStore  identity.Store
		boardStore     board.BoardStore
		memberRegistry board.MembershipRegistry
		readyProbe     httpapi.ReadyProbe
	)
	if cfg.DatabaseURL != "" {
		pgStore, err := pg.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()
		identityStore = pgStore.Identities()
		boardStore = pgStore.Boards()
		memberRegistry = pgStore.Members()
		readyProbe = httpapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		memStore := memory.New()
		identityStore = memStore.Identities()
		boardStore = memStore.Boards()
		memberRegistry = memStore.Members()
		log.Println("DATABASE_URL not set, using in-memory store")
	}

	identities, err := identity.NewService(identityStore, tokens)
	if err != nil {
		log.Fatalf("identity service: %v", err)
	}
	boards, err := board.NewService(boardStore, memberRegistry, identityStore)
	if err != nil {
		log.Fatalf("board service: %v", err)
	}

	api := httpapi.New(httpapi.Config{
		Identities:         identities,
		Boards:             boards,
		Tokens:             tokens,
		ReadyProbe:         readyProbe,
		Version:            version,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	log.Printf("Starting boardhub-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = srv.Shutdown(ctx)
	log.Println("Stopped")
}

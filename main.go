package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pi.service/api/brapi"
	"pi.service/config"
	c "pi.service/core"
	"pi.service/data/cache"
)

func main() {
	// initialize context and signal handler, listen for interrupt and term signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env first, then the environment, then defaults
	cfg := config.Load()

	// get brapi client, a missing token still serves the free tickers
	brapiClient, err := brapi.GetClient(cfg.BrapiBaseURL, cfg.BrapiToken, cfg.UpstreamTimeout)
	if err != nil {
		log.Fatalf("Failed to create brapi client: %v", err)
	}
	if cfg.BrapiToken == "" {
		log.Printf("%s not set, requests are unauthenticated", config.BrapiTokenKey)
	}

	quoteCache := cache.New(cfg.CacheTTL, cfg.MaxCacheEntries)
	log.Printf("Quote cache ttl %v, max entries %d", quoteCache.TTL(), quoteCache.MaxEntries())

	sc := c.NewServiceContext(brapiClient, quoteCache, cfg.PortfolioWeightTolerance)

	// get http server, makes all of the endpoints and routes
	s := c.GetHttpServer(sc, cfg.HttpAddr, cfg.CorsAllowedOrigins)

	go func() {
		log.Printf("HTTP server listening on %s", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait for a signal
	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// let in flight cache writes land before exiting
	sc.Flush()

	log.Println("Server exiting")
}

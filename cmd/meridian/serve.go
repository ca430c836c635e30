package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/meridianhq/meridian/internal/common/clock"
	"github.com/meridianhq/meridian/internal/common/pin"
	"github.com/meridianhq/meridian/internal/common/uuid"
	"github.com/meridianhq/meridian/internal/config"
	"github.com/meridianhq/meridian/internal/enrichment"
	"github.com/meridianhq/meridian/internal/handlers/web"
	"github.com/meridianhq/meridian/internal/places"
	sessionRepo "github.com/meridianhq/meridian/internal/repositories/session"
	venueRepo "github.com/meridianhq/meridian/internal/repositories/venue"
	voteRepo "github.com/meridianhq/meridian/internal/repositories/vote"
	"github.com/meridianhq/meridian/internal/routing"
	"github.com/meridianhq/meridian/internal/services/discovery"
	"github.com/meridianhq/meridian/internal/services/midpoint"
	sessionService "github.com/meridianhq/meridian/internal/services/session"
	"github.com/meridianhq/meridian/internal/ws"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the meridian API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.GoogleMapsAPIKey == "" {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sessions, err := sessionRepo.NewGorm(&sessionRepo.Config{DB: db})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	venues, err := venueRepo.NewGorm(&venueRepo.Config{DB: db})
	if err != nil {
		return fmt.Errorf("failed to create venue repository: %w", err)
	}

	votes, err := voteRepo.NewGorm(&voteRepo.Config{DB: db})
	if err != nil {
		return fmt.Errorf("failed to create vote repository: %w", err)
	}

	var oracle routing.Oracle
	oracle, err = routing.NewGoogle(&routing.GoogleConfig{
		APIKey: cfg.GoogleMapsAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create oracle: %w", err)
	}

	// An optional redis cache keeps the bisection loop from re-querying
	// the oracle for points it has already seen
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		oracle, err = routing.NewCached(&routing.CacheConfig{
			Inner:       oracle,
			RedisClient: redisClient,
		})
		if err != nil {
			return fmt.Errorf("failed to create oracle cache: %w", err)
		}
	}

	placesClient, err := places.NewGoogle(&places.GoogleConfig{
		APIKey: cfg.GoogleMapsAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create places client: %w", err)
	}

	finder, err := midpoint.New(&midpoint.Config{
		Oracle: oracle,
	})
	if err != nil {
		return fmt.Errorf("failed to create midpoint finder: %w", err)
	}

	disco, err := discovery.New(&discovery.Config{
		Places: placesClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create discovery service: %w", err)
	}

	var enricher enrichment.Client
	if cfg.AnthropicAPIKey != "" {
		enricher, err = enrichment.NewAnthropic(&enrichment.AnthropicConfig{
			APIKey: cfg.AnthropicAPIKey,
		})
		if err != nil {
			return fmt.Errorf("failed to create enrichment client: %w", err)
		}
	} else {
		log.Println("ANTHROPIC_API_KEY not set, skipping venue enrichment")
	}

	svc, err := sessionService.New(&sessionService.Config{
		SessionRepo: sessions,
		VenueRepo:   venues,
		VoteRepo:    votes,
		Finder:      finder,
		Discovery:   disco,
		Enrichment:  enricher,
		Clock:       &clock.DefaultClock{},
		UUID:        uuid.New(),
		Pins:        pin.New(nil),
		BaseURL:     cfg.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create session service: %w", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	handler, err := web.New(&web.Config{
		Sessions: svc,
		Hub:      hub,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	return handler.Router().Run(cfg.ListenAddr)
}

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/dodyw/sholat-live/internal/config"
	"github.com/dodyw/sholat-live/internal/conversation"
	"github.com/dodyw/sholat-live/internal/db"
	"github.com/dodyw/sholat-live/internal/geocode"
	prayertimesapi "github.com/dodyw/sholat-live/internal/http/api/prayertimes"
	"github.com/dodyw/sholat-live/internal/http/api/webhook"
	"github.com/dodyw/sholat-live/internal/prayer"
	"github.com/dodyw/sholat-live/internal/redis"
	"github.com/dodyw/sholat-live/internal/resolver"
	"github.com/dodyw/sholat-live/internal/schedule"
	"github.com/dodyw/sholat-live/internal/whatsapp"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(conn)

	rdb := redis.NewClient(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	contacts := redis.NewContactStore(rdb)

	timezones, err := geocode.NewTimezoneFinder(cfg.DefaultTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("timezone finder init")
	}

	calc := prayer.Calculator{}
	geocoder := geocode.NewClient(cfg.NominatimURL)
	cityResolver := resolver.New(store, geocoder, timezones)
	cache := schedule.NewCache(store, calc)
	policy := conversation.NewPolicy(contacts)
	sender := whatsapp.NewSender(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID)

	// daily pre-warm sweep for the rolling 7-day window
	runner := schedule.NewRunner(cache, cfg.PrewarmInterval)
	go runner.Run(context.Background())

	// set up gin router
	r := gin.Default()

	botCtl := webhook.NewController(
		cfg.WhatsAppVerifyToken, cfg.DefaultCity,
		cityResolver, cache, policy, contacts, sender,
	)
	webhook.RegisterRoutes(r, botCtl)

	apiGroup := r.Group("/api")
	prayertimesapi.RegisterRoutes(apiGroup, prayertimesapi.NewController(calc, cfg.DefaultTimezone))

	// start
	log.Info().Msgf("listening on %s", cfg.ServerAddress)
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

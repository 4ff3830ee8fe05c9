package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"kicharme.com.br/storefront/internal/router"
	"kicharme.com.br/storefront/pkg/ai"
	"kicharme.com.br/storefront/pkg/catalog"
	"kicharme.com.br/storefront/pkg/checkout"
	"kicharme.com.br/storefront/pkg/logger"
	"kicharme.com.br/storefront/pkg/mongo"
	"kicharme.com.br/storefront/pkg/redis"
)

type appConfig struct {
	Port           string   `envconfig:"PORT" default:"8000"`
	Env            string   `envconfig:"APP_ENV" default:"development"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	AdminUsername  string   `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminKeyHash   string   `envconfig:"ADMIN_KEY_HASH"`
	StoreWhatsApp  string   `envconfig:"STORE_WHATSAPP" default:"5566996970685"`

	Mongo mongo.Config
	Redis redis.Config
	AI    ai.Config
}

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, reading environment directly")
	}

	var cfg appConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.Env)

	if cfg.AdminKeyHash == "" {
		logger.Warn().Msg("ADMIN_KEY_HASH not set, admin routes will reject every request")
	}

	var (
		repo  catalog.Repository
		users catalog.UserDirectory
	)
	if cfg.Mongo.Enabled() {
		mongoRepo, err := mongo.New(cfg.Mongo)
		if err != nil {
			logger.Fatal().Err(err).Msg("mongodb connection failed")
		}
		defer mongoRepo.Close(context.Background())
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Warn().Err(err).Msg("index creation failed")
		}
		repo = mongoRepo
		users = mongoRepo
		logger.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb persistence")
	} else {
		mem := catalog.NewMemoryRepository(catalog.Snapshot{})
		repo = mem
		users = mem
		logger.Warn().Msg("MONGODB_URI not set, running on in-memory persistence")
	}

	store := catalog.NewStore(repo)
	if err := store.Load(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("catalog load failed, serving empty catalog")
	}

	carts := redis.NewSessionStore(cfg.Redis.NewClient(), cfg.Redis.CartTTL)
	if err := carts.Ping(context.Background()); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis unreachable, cart operations will fail")
	}

	ai.Initialize(cfg.AI)

	app := router.NewApp(router.Config{
		Env:            cfg.Env,
		AllowedOrigins: cfg.AllowedOrigins,
		AdminUsername:  cfg.AdminUsername,
		AdminKeyHash:   cfg.AdminKeyHash,
	}, store, users, carts, checkout.NewComposer(cfg.StoreWhatsApp))

	logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront api listening")
	if err := app.Engine().Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

package di

import (
	"context"
	"fmt"
	"time"

	"ft-server/cache"
	"ft-server/catalog"
	"ft-server/config"
	"ft-server/dao/redis"
	"ft-server/db"
	"ft-server/field"
	"ft-server/hexagg"
	"ft-server/logging"
	"ft-server/modulation"
	"ft-server/server"
	"ft-server/server/handlers"
	services "ft-server/service"
	"ft-server/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Config             *config.Config
	RedisClient        db.RedisClient
	RedisPoiDao        *redis.RedisPoiDAO
	Catalog            catalog.Catalog
	Generator          *field.Generator
	DensityService     *services.DensityService
	TrafficService     *services.TrafficService
	CacheService       *services.CacheService
	CatalogService     *services.CatalogService
	CacheWarmerService *services.CacheWarmerService
	TrafficHandler     *handlers.TrafficHandler
	PoiHandler         *handlers.PoiHandler
	HealthHandler      *handlers.HealthHandler
	MuxRouter          *mux.Router
	Router             *server.Router
	HttpServer         *server.FootTrafficHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logging.WithComponent("Container")
	log.Info().Str("cache_backend", cfg.Cache.Backend).Msg("initializing container")

	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	densityStore, trafficStore := newStores(cfg, redisClient)

	poiCatalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	table := modulation.Default()
	if missing := poiCatalog.MissingCategories(table); len(missing) > 0 {
		log.Warn().Interface("categories", missing).Msg("categories without modulation curves use neutral multipliers")
	}

	evaluator := field.NewEvaluator(poiCatalog, table, field.RandomNoise)
	generator := field.NewGenerator(
		field.NewRasterizer(evaluator, catalog.ParisBounds, cfg.Field.Workers),
		field.NewDensifier(evaluator),
	)
	index := hexagg.NewH3Index()
	densityService := services.NewDensityService(generator, hexagg.NewAggregator(index), densityStore)

	legacy := field.NewLegacyEvaluator(catalog.Legacy(), modulation.Legacy(), field.RandomNoise)
	trafficService := services.NewTrafficService(legacy, index, catalog.LegacyBounds, trafficStore)

	cacheService := services.NewCacheService(densityStore, trafficStore)

	redisPoiDao := redis.NewRedisPoiDAO(redisClient)
	catalogService := services.NewCatalogService(redisPoiDao, poiCatalog)
	if _, err := catalogService.Publish(); err != nil {
		return nil, fmt.Errorf("publishing catalog: %w", err)
	}

	warmer := services.NewCacheWarmerService(densityService, trafficService, cfg.Warmer.Tier, loadLocation(cfg.Warmer.Timezone))

	trafficHandler := handlers.NewTrafficHandler(densityService, trafficService, cacheService, catalog.ParisBounds.BoundingBox)
	poiHandler := handlers.NewPoiHandler(catalogService)
	healthHandler := handlers.NewHealthHandler(cfg.Mapbox.Token)

	// Initialize mux router
	muxRouter := mux.NewRouter()
	router := server.NewRouter(trafficHandler, poiHandler, healthHandler, muxRouter)
	router.RegisterRoutes()

	var limiter *server.RateLimiter
	if cfg.Server.RateLimitRPS > 0 {
		limiter = server.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, cfg.Server.TrustedProxies...)
	}
	httpServer := server.NewFootTrafficHttpServer(
		router.Handler(cfg.Server.CORSOrigins, limiter),
		cfg.Server.Port,
		cfg.Server.ShutdownTimeout,
	)

	return &Container{
		Config:             cfg,
		RedisClient:        redisClient,
		RedisPoiDao:        redisPoiDao,
		Catalog:            catalogService.Catalog(),
		Generator:          generator,
		DensityService:     densityService,
		TrafficService:     trafficService,
		CacheService:       cacheService,
		CatalogService:     catalogService,
		CacheWarmerService: warmer,
		TrafficHandler:     trafficHandler,
		PoiHandler:         poiHandler,
		HealthHandler:      healthHandler,
		MuxRouter:          muxRouter,
		Router:             router,
		HttpServer:         httpServer,
	}, nil
}

// newRedisClient connects to Redis for the redis backend; the memory backend
// gets an in-process client so the POI index works without a server.
func newRedisClient(ctx context.Context, cfg *config.Config) (db.RedisClient, error) {
	if cfg.Cache.Backend != config.CACHE_BACKEND_REDIS {
		return db.NewMemoryRedisClient(ctx), nil
	}
	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	client, err := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func newStores(cfg *config.Config, client db.RedisClient) (density, traffic cache.Store) {
	if cfg.Cache.Backend == config.CACHE_BACKEND_REDIS {
		return cache.NewRedisStore("density", cfg.Cache.Capacity, client),
			cache.NewRedisStore("traffic", cfg.Cache.Capacity, client)
	}
	return cache.NewFIFOStore("density", cfg.Cache.Capacity),
		cache.NewFIFOStore("traffic", cfg.Cache.Capacity)
}

func loadCatalog(path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := util.ReadCatalogFromJSON(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog override: %w", err)
	}
	logging.Info().Str("path", path).Int("count", len(c)).Msg("using catalog override")
	return c, nil
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		logging.Warn().Err(err).Str("timezone", name).Msg("unknown timezone, warming in UTC")
		return time.UTC
	}
	return loc
}

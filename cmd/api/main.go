// @title           Quran Reading API
// @version         1.0
// @description     An API for reading and searching the Quran from offline verse datasets

// @host      localhost:4000
// @BasePath  /v1

package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"rizkifajar/quran-api/internal/cache"
	"rizkifajar/quran-api/internal/corpus"
	"rizkifajar/quran-api/internal/pageindex"
	"rizkifajar/quran-api/internal/ratelimit"
	"rizkifajar/quran-api/internal/scheduler"
	"rizkifajar/quran-api/internal/service"
)

var (
	version = "1.0.0"
)

type config struct {
	port    int
	env     string
	dataDir string

	pageAPIURL string

	corsTrustedOrigin string

	ratelimit struct {
		ipRateLimit int
	}

	warmup struct {
		enabled bool
		workers int
		stagger time.Duration
	}

	redisConfig cache.RedisConfig
}

type application struct {
	config        config
	logger        *slog.Logger
	ipRateLimiter *ratelimit.RateLimiter
}

func main() {
	var cfg config

	flag.IntVar(&cfg.port, "port", 4000, "API server port")

	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")

	flag.StringVar(&cfg.dataDir, "data-dir", "data", "Directory holding the offline verse datasets")

	flag.StringVar(&cfg.pageAPIURL, "page-api-url", pageindex.DefaultBaseURL, "Base URL of the page layout API")

	flag.StringVar(&cfg.corsTrustedOrigin, "cors-trusted-origin", "*", "Trusted CORS origin")

	flag.IntVar(&cfg.ratelimit.ipRateLimit, "ip-rate-limit", 30, "IP rate limit")

	flag.BoolVar(&cfg.warmup.enabled, "warmup", true, "Prefetch chapter sources after startup")
	flag.IntVar(&cfg.warmup.workers, "warmup-workers", 2, "Warmup worker count")
	flag.DurationVar(&cfg.warmup.stagger, "warmup-stagger", 50*time.Millisecond, "Delay between scheduled warmup loads")

	flag.StringVar(&cfg.redisConfig.Host, "redis-host", "", "Redis Host (empty disables the response cache)")
	flag.StringVar(&cfg.redisConfig.Port, "redis-port", "6379", "Redis Port")
	flag.StringVar(&cfg.redisConfig.Password, "redis-password", "", "Redis Password")
	flag.IntVar(&cfg.redisConfig.DB, "redis-db", 0, "Redis DB")
	flag.IntVar(&cfg.redisConfig.PoolSize, "redis-poolsize", 10, "Redis Pool Size")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store := corpus.NewStore(os.DirFS(cfg.dataDir))

	var responseCache service.ResponseCache
	if cfg.redisConfig.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.redisConfig, 24*time.Hour)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer redisClient.Close()

		logger.Info("Successful connection to redis")
		responseCache = redisClient
	}

	pageIndex := pageindex.NewQuranComIndex(cfg.pageAPIURL, nil)

	services := service.NewServices(store, pageIndex, responseCache, logger)

	app := &application{
		config:        cfg,
		logger:        logger,
		ipRateLimiter: ratelimit.NewRateLimiter(cfg.ratelimit.ipRateLimit, time.Second),
	}

	handlers := NewHandlers(app, services)

	if cfg.warmup.enabled {
		warmer := scheduler.NewScheduler(cfg.warmup.workers, store, logger)
		warmer.Start()
		warmer.ScheduleWarmup(cfg.warmup.stagger)
	}

	err := app.serve(handlers)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

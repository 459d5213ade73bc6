package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bundlecache/bundlecache"
	"github.com/bundlecache/bundlecache/builder"
	"github.com/bundlecache/bundlecache/cache"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

var (
	// CLI flags
	configFilenameFlag string
	portFlag           int
	providerFlag       string
	dbFilenameFlag     string
	redisAddrFlag      string
	adminTokenFlag     string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "bundles.yml", "Path to bundle manifest")
	flag.IntVar(&portFlag, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&providerFlag, "provider", "sqlite", "Cache provider to use (sqlite, memory, redis)")
	flag.StringVar(&dbFilenameFlag, "db", "cache.db", "Cache DB file name (use 'memory' for an in-memory db)")
	flag.StringVar(&redisAddrFlag, "redis", "localhost:6379", "Redis address for the redis provider")
	flag.StringVar(&adminTokenFlag, "admin-token", "", "Token unlocking validation mode (disabled if empty)")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilenameFlag != "" {
		if logFileOutput, err := os.OpenFile(logFilenameFlag, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	config, err := getConfig(configFilenameFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot read bundle manifest")
	}
	if len(config.Bundles) == 0 {
		log.Fatal().Msg("Manifest defines no bundles")
	}

	port := portFlag
	if port == 0 {
		port = config.Port
	}
	if port == 0 {
		port = 8080
	}

	cacheConfig := bundlecache.Config{
		Cache:       newProvider(),
		Resolver:    bundlecache.NewStaticResolver(config.bundles()...),
		Builder:     builder.FS{Root: config.AssetRoot},
		ClientCache: config.ClientCache,
		Logger:      &log.Logger,
	}
	if adminTokenFlag != "" {
		cacheConfig.Authorizer = func(r *http.Request) bool {
			return r.Header.Get("X-Admin-Token") == adminTokenFlag
		}
	}
	bcache := bundlecache.New(cacheConfig)

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(middleware.Compress(5))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", bcache.Middleware(http.NotFoundHandler()))

	log.Info().Msgf("Serving %d bundles on port %v", len(config.Bundles), port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), r); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// newProvider sets up the cache provider selected on the command line.
func newProvider() cache.Provider {
	switch providerFlag {
	case "sqlite":
		dbFilename := dbFilenameFlag
		if dbFilename == "memory" {
			dbFilename = "file::memory:?cache=shared"
		}
		provider, err := cache.NewSQLiteCache(dbFilename)
		if err != nil {
			log.Fatal().Err(err).Msg("Cannot open cache db")
		}
		return provider
	case "memory":
		return cache.NewMemCache()
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: redisAddrFlag})
		return cache.NewRedisCache(client)
	default:
		log.Fatal().Msgf("Unsupported cache provider: %s", providerFlag)
		return nil
	}
}

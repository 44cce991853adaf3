package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/coocood/freecache"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/robertojose17/MacroGoal-sub000/internal/progress"
	"github.com/robertojose17/MacroGoal-sub000/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env loaded: %s", err)
	}

	env := getenv("APP_ENV", "development")
	cfg, err := loadConfig(env, getenv("CONFIG_PATH", "config.toml"))
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	setupLogging(cfg)
	log.Infof("running in [%s] environment", env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database: %s", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	log.Info("DB pool ready")

	reg := setupPrometheus(pgxpoolprometheus.NewCollector(pool, map[string]string{"db_name": "macrogoal"}))
	metrics := newMetricsManager("macrogoal", "api", reg)

	logger := log.StandardLogger()
	h := newHandler(
		store.New(pool, logger),
		progress.NewAnalyzer(logger),
		freecache.NewCache(cfg.CacheSizeMB*1024*1024),
		cfg.CacheTTLSeconds,
		metrics,
		logger,
	)

	if env != "development" && env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Warnf("set trusted proxies: %s", err)
	}
	h.registerRoutes(router, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(router)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %s", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %s", err)
	}
}

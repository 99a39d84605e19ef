package main

import (
	"context"
	"os"
	"time"

	"github.com/Isaacdev2004/shonencloud-arena/internal/api"
	"github.com/Isaacdev2004/shonencloud-arena/internal/bus"
	"github.com/Isaacdev2004/shonencloud-arena/internal/config"
	"github.com/Isaacdev2004/shonencloud-arena/internal/constants"
	"github.com/Isaacdev2004/shonencloud-arena/internal/feed"
	"github.com/Isaacdev2004/shonencloud-arena/internal/logging"
	"github.com/Isaacdev2004/shonencloud-arena/internal/notify"
	"github.com/Isaacdev2004/shonencloud-arena/internal/service"
	"github.com/Isaacdev2004/shonencloud-arena/internal/storage"
	"github.com/Isaacdev2004/shonencloud-arena/internal/version"

	"github.com/gin-gonic/gin"
)

func main() {
	// Technique catalog path via ARENA_CONFIG, defaulting to the local
	// file for development.
	configPath := os.Getenv(constants.EnvArenaConfig)
	if configPath == "" {
		configPath = "./arena_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": configPath, "hint": "create an arena_config.json with a 'technique_list' array and an optional 'discipline_list'"})
	}

	dbPath := os.Getenv(constants.EnvArenaDB)
	if dbPath == "" {
		dbPath = "./data/arena.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	hub := bus.NewHub()
	go hub.Run(context.Background())

	feedLog := feed.NewLog(repo, hub, cfg.FeedTTL)
	svc := service.New(repo, cfg.Catalog, notify.NewHubSink(hub), feedLog)
	handler := api.NewArenaHandler(svc, hub)

	startBackgroundLoops(svc)

	router := gin.Default()
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public reads.
		apiRoutes.GET(constants.RouteTechniques, handler.Techniques)
		apiRoutes.GET(constants.RouteSession, handler.Session)
		apiRoutes.GET(constants.RouteFeed, handler.Feed)
		apiRoutes.GET(constants.RouteFeedWS, handler.FeedWS)
		apiRoutes.GET(constants.RouteZone, handler.Zone)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Identified actions.
		acting := apiRoutes.Group("")
		acting.Use(api.ActorRequired())
		acting.POST(constants.RouteJoin, handler.Join)
		acting.GET(constants.RouteProfile, handler.Profile)
		acting.POST(constants.RouteAttack, handler.Attack)
		acting.POST(constants.RouteTechnique, handler.UseTechnique)
		acting.POST(constants.RouteTarget, handler.SetTarget)
		acting.DELETE(constants.RouteTarget, handler.ClearTarget)
		acting.POST(constants.RouteObserve, handler.Observe)
		acting.POST(constants.RouteRevive, handler.Revive)
		acting.POST(constants.RouteMove, handler.Move)
		acting.POST(constants.RouteBattle, handler.StartBattle)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "build": version.String()})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// startBackgroundLoops runs the periodic scanners: session reconcile,
// inactivity decay, per-minute status drains, knockout ejection and
// storage hygiene. Each loop derives state from absolute timestamps so
// a missed tick never corrupts anything.
func startBackgroundLoops(svc *service.Arena) {
	go runEvery(constants.SessionTickInterval, func() {
		if _, err := svc.SessionState(); err != nil {
			logging.Error("session reconcile failed", err, nil)
		}
	})
	go runEvery(constants.DecayTickInterval, svc.DecayTick)
	go runEvery(constants.PeriodicTickInterval, svc.PeriodicTick)
	go runEvery(constants.KOScanInterval, svc.EjectExpiredKOs)
	go runEvery(constants.SweepInterval, svc.SweepExpired)
}

func runEvery(interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		fn()
	}
}

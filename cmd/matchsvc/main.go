package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	flag "github.com/spf13/pflag"

	config "github.com/avvvet/match-services/configs"
	"github.com/avvvet/match-services/internal/matchsvc/broker"
	svcconfig "github.com/avvvet/match-services/internal/matchsvc/config"
	"github.com/avvvet/match-services/internal/matchsvc/db"
	"github.com/avvvet/match-services/internal/matchsvc/feed"
	"github.com/avvvet/match-services/internal/matchsvc/handlers"
	"github.com/avvvet/match-services/internal/matchsvc/service"
	"github.com/avvvet/match-services/internal/matchsvc/store"
	nats "github.com/avvvet/match-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "match"

func main() {
	envFile := flag.String("env", "./.env", "path of the env file to load")
	flag.Parse()

	config.LoadEnv(*envFile)
	cfg, err := svcconfig.Load()
	config.Logging(SERVICE_NAME+"_service", cfg.LogDir)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer st.Close()

	// events go to the websocket feed and, when configured, to NATS
	hub := feed.NewHub()
	publishers := broker.Fanout{hub}

	if cfg.NatsUrl != "" {
		n, err := nats.Connect(SERVICE_NAME+"-"+instanceId, cfg.NatsUrl, cfg.NatsToken)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		defer n.Conn.Drain()
		log.Infof("NATS connection established successfully %s", n.Url)
		publishers = append(publishers, broker.NewBroker(n.Conn, cfg.SubjectPrefix))
	} else {
		log.Warn("NATS_URL not set, events are only sent to websocket clients")
	}

	h := handlers.NewHandler(handlers.Services{
		Players:     service.NewPlayerService(st, publishers),
		TeamChoices: service.NewTeamChoiceService(st, publishers),
		Games:       service.NewGameService(st, publishers),
		Stats:       service.NewStatsService(st),
		Queries:     service.NewGameQueryService(st),
	}, hub)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS(cfg.AllowedOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

func openStore(cfg svcconfig.Config) (store.Store, error) {
	if cfg.StoreDriver == svcconfig.DriverMemory {
		log.Warn("using the in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Printf("pg connection established successfully")
	return store.NewPgStore(pool), nil
}

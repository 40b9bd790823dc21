/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave-planner API server: configuration,
  dependency wiring, graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and command-line flags
  2. Load regulatory constants (defaults, or YAML override)
  3. Open the SQLite plan store
  4. Wire handler + router
  5. Serve with graceful shutdown on SIGINT/SIGTERM

FLAGS:
  -port        HTTP port (default 8080, env PORT)
  -db          SQLite path (default plans.db, ":memory:" for ephemeral)
  -regulatory  Optional YAML file overriding G and the other constants

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Plan persistence
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/stork/leave-engine/api"
	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/economy"
	"github.com/stork/leave-engine/leave"
	"github.com/stork/leave-engine/store/sqlite"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional; flags win over env.
	_ = godotenv.Load()

	defaultPort := os.Getenv("PORT")
	if defaultPort == "" {
		defaultPort = "8080"
	}

	port := flag.String("port", defaultPort, "HTTP server port")
	dbPath := flag.String("db", "plans.db", "SQLite database path (\":memory:\" for ephemeral)")
	regPath := flag.String("regulatory", "", "YAML file overriding regulatory constants")
	flag.Parse()

	reg := economy.DefaultRegulatory()
	if *regPath != "" {
		loaded, err := economy.LoadRegulatory(*regPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load regulatory config")
		}
		reg = loaded
		log.WithField("path", *regPath).Info("loaded regulatory overrides")
	}

	plans, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open plan store")
	}
	defer plans.Close()

	cal := calendar.NewCalendar()
	handler := api.NewHandler(cal, leave.NewEngine(cal), economy.NewCalculator(reg), plans, log)

	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.WithFields(logrus.Fields{"port": *port, "db": *dbPath}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

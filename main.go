package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "metrobus/internal/config"
	router "metrobus/internal/http"
	"metrobus/internal/metrics"
	"metrobus/internal/publisher"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	addr := pflag.String("addr", env.AppAddr, "HTTP listen address")
	fleetFile := pflag.String("fleet", env.FleetFile, "YAML fleet seed (built-in seed when empty)")
	pflag.Parse()
	env.AppAddr = *addr
	env.FleetFile = *fleetFile

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	seed, err := intconfig.LoadFleetSeed(env.FleetFile)
	if err != nil {
		log.Fatalf("fleet: %v", err)
	}
	topo, fleet, err := seed.Build()
	if err != nil {
		log.Fatalf("fleet: %v", err)
	}

	ctrl := services.NewController(topo, fleet, services.Options{
		MatchQueueByName: env.QueueMatchByName,
		TicketPrefix:     env.TicketPrefix,
	})

	var m *metrics.Collector
	if env.MetricsEnabled {
		m = metrics.NewCollector()
		ctrl.AddListener(m)
	}

	if env.NATSURL != "" {
		var pm publisher.PublisherMetrics
		if m != nil {
			pm = m
		}
		pub, err := publisher.NewNATSPublisher(env.NATSURL, env.NATSSubjectPrefix, pm)
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer pub.Close()
		ctrl.AddListener(pub)
		log.Printf("publishing console events to %s (prefix %s)", env.NATSURL, env.NATSSubjectPrefix)
	}

	r := router.NewRouter(env, ctrl, m)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Metro bus console listening on http://localhost%s (%d stations, %d buses)", env.AppAddr, len(topo.Stations()), fleet.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown failed: %v", err)
		return
	}

	log.Println("Server stopped.")
}

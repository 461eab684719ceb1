// Package app wires the configuration into a running dispatch service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apidispatch "github.com/kilianp07/wasteops/api/dispatch"
	"github.com/kilianp07/wasteops/api/fleet"
	"github.com/kilianp07/wasteops/api/tasks"
	"github.com/kilianp07/wasteops/config"
	coredispatch "github.com/kilianp07/wasteops/core/dispatch"
	"github.com/kilianp07/wasteops/core/registry"
	"github.com/kilianp07/wasteops/infra/logger"
	"github.com/kilianp07/wasteops/infra/metrics"
	"github.com/kilianp07/wasteops/infra/mqtt"
	"github.com/kilianp07/wasteops/infra/notify"
	"github.com/kilianp07/wasteops/internal/eventbus"
)

// Service orchestrates the coordinator, the HTTP API and the outbound
// connectors.
type Service struct {
	Coordinator *coredispatch.Coordinator

	cfg     *config.Config
	bus     eventbus.EventBus
	log     logger.Logger
	pub     mqtt.Publisher
	closers []func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	taskReg := registry.NewTasks()
	vehicleReg := registry.NewVehicles()
	driverReg := registry.NewDrivers()
	taskReg.ReplaceAll(cfg.Seed.BuildTasks())
	vehicleReg.ReplaceAll(cfg.Seed.BuildVehicles())
	driverReg.ReplaceAll(cfg.Seed.BuildDrivers())

	sink, err := metrics.NewSink(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New()
	coord, err := coredispatch.NewCoordinator(taskReg, vehicleReg, driverReg, bus, sink, logger.New("dispatch"))
	if err != nil {
		return nil, fmt.Errorf("coordinator: %w", err)
	}

	svc := &Service{Coordinator: coord, cfg: cfg, bus: bus, log: logg}
	if c, ok := sink.(interface{ Close() }); ok {
		svc.closers = append(svc.closers, c.Close)
	}

	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
		svc.closers = append(svc.closers, pub.Close)
	}
	return svc, nil
}

// Run starts the service and blocks until the context is cancelled or the
// HTTP server fails.
func (s *Service) Run(ctx context.Context) error {
	notify.Start(ctx, s.bus, notify.NewLogNotifier(logger.New("notify")))
	if s.pub != nil {
		mqtt.StartBridge(ctx, s.bus, s.pub, s.cfg.MQTT.TopicPrefix, logger.New("mqtt-bridge"))
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.cfg.API.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler returns the HTTP API routing table.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/tasks", tasks.NewTasksHandler(s.Coordinator))
	mux.Handle("/api/tasks/pending", tasks.NewPendingHandler(s.Coordinator))
	mux.Handle("/api/fleet", fleet.NewSnapshotHandler(s.Coordinator))
	mux.Handle("/api/fleet/eligible", fleet.NewEligibilityHandler(s.Coordinator))
	mux.Handle("/api/dispatch/assign", apidispatch.NewAssignHandler(s.Coordinator))
	mux.Handle("/api/dispatch/release", apidispatch.NewReleaseHandler(s.Coordinator))
	return mux
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	for _, c := range s.closers {
		c()
	}
	s.bus.Close()
	return nil
}

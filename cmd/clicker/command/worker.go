package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-clicker/internal/driver"
	"github.com/pixil98/go-clicker/internal/game"
	"github.com/pixil98/go-clicker/internal/listener"
	"github.com/pixil98/go-clicker/internal/persist"
	"github.com/pixil98/go-clicker/internal/player"
	service "github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Embedded NATS server backs both the event bus and the
	// cloud-save buckets
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	cat, err := cfg.Storage.BuildCatalog()
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	accounts, err := cfg.Storage.BuildAccountStore()
	if err != nil {
		return nil, fmt.Errorf("creating account store: %w", err)
	}

	localStore, err := cfg.Storage.BuildLocalStore()
	if err != nil {
		return nil, fmt.Errorf("creating local save store: %w", err)
	}

	err = os.MkdirAll(cfg.Storage.ExportsPath, 0o755)
	if err != nil {
		return nil, fmt.Errorf("creating exports directory: %w", err)
	}

	cloudStore := persist.NewCloudStore(natsServer)
	leaderboard := persist.NewLeaderboard(natsServer)

	// One engine per live session, ticked by the driver
	registry := game.NewRegistry()

	var driverOpts []driver.GameDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	gameDriver := driver.NewGameDriver([]driver.Ticker{registry}, driverOpts...)

	var autosaveOpts []persist.AutosaveWorkerOpt
	if cfg.AutosaveInterval != "" {
		d, err := time.ParseDuration(cfg.AutosaveInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing autosave_interval: %w", err)
		}
		autosaveOpts = append(autosaveOpts, persist.WithAutosaveInterval(d))
	}
	autosave := persist.NewAutosaveWorker(registry, cloudStore, autosaveOpts...)

	sessionManager := player.NewSessionManager(accounts, cat, registry, localStore, cloudStore, leaderboard, natsServer, cfg.Storage.ExportsPath)
	connManager := listener.NewConnectionManager(sessionManager)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(connManager)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	return service.WorkerList{
		"nats":        natsServer,
		"driver":      gameDriver,
		"local-saves": localStore,
		"autosave":    autosave,
		"sessions":    sessionManager,
		"listeners":   &listeners,
	}, nil
}

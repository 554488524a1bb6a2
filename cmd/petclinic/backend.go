package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/petclinic-service/internal/config"
	"github.com/maxviazov/petclinic-service/internal/handler"
	"github.com/maxviazov/petclinic-service/internal/logger"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/repository/memory"
	"github.com/maxviazov/petclinic-service/internal/repository/postgres"
	"github.com/maxviazov/petclinic-service/internal/seed"
	"github.com/maxviazov/petclinic-service/internal/service"
)

// backend is the store-specific half of the wiring: the services and a readiness check.
type backend struct {
	services handler.Services
	pinger   handler.Pinger
	close    func()
}

func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("config loading failed: %w", err)
	}
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("logger initialization failed: %w", err)
	}
	return cfg, appLogger, nil
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, log)
	default:
		return openMemory(cfg, log)
	}
}

func openMemory(cfg *config.Config, log zerolog.Logger) (*backend, error) {
	var ds *seed.Dataset
	if cfg.Store.Seed {
		var err error
		if ds, err = seed.Default(time.Now()); err != nil {
			return nil, err
		}
	}
	st := memory.New(ds)
	log.Info().Str("driver", config.DriverMemory).Bool("seeded", ds != nil).Msg("store ready")
	return &backend{
		services: newServices(
			memory.NewOwnerRepository(st),
			memory.NewPetRepository(st),
			memory.NewVisitRepository(st),
			memory.NewVetRepository(st),
			memory.NewTxManager(st),
			log,
		),
		pinger: memory.NewPinger(),
		close:  func() {},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	repo, err := repository.New(ctx, cfg, &log)
	if err != nil {
		return nil, err
	}
	pool := repo.Pool()
	if err := postgres.Migrate(ctx, pool, &log); err != nil {
		repo.Close()
		return nil, err
	}
	if cfg.Store.Seed {
		if _, err := seedPostgres(ctx, repo, log); err != nil {
			repo.Close()
			return nil, err
		}
	}
	log.Info().Str("driver", config.DriverPostgres).Msg("store ready")
	return &backend{
		services: newServices(
			postgres.NewOwnerRepository(pool),
			postgres.NewPetRepository(pool),
			postgres.NewVisitRepository(pool),
			postgres.NewVetRepository(pool),
			postgres.NewTxManager(pool),
			log,
		),
		pinger: postgres.NewPinger(pool),
		close:  repo.Close,
	}, nil
}

func seedPostgres(ctx context.Context, repo *repository.Repository, log zerolog.Logger) (bool, error) {
	ds, err := seed.Default(time.Now())
	if err != nil {
		return false, err
	}
	inserted, err := postgres.Seed(ctx, repo.Pool(), ds)
	if err != nil {
		return false, fmt.Errorf("seed failed: %w", err)
	}
	log.Info().Bool("inserted", inserted).Msg("reference dataset applied")
	return inserted, nil
}

func newServices(
	owners repository.OwnerRepository,
	pets repository.PetRepository,
	visits repository.VisitRepository,
	vets repository.VetRepository,
	tx repository.TxManager,
	log zerolog.Logger,
) handler.Services {
	petSvc := service.NewPetService(pets, owners, log)
	return handler.Services{
		Owners: service.NewOwnerService(owners, tx, log),
		Pets:   petSvc,
		Visits: service.NewVisitService(visits, petSvc, log),
		Vets:   service.NewVetService(vets, log),
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"productivity/config"
	"productivity/repository"
	"productivity/services"
	"productivity/usecase"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// app holds the wired service and the resources that need closing.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	service *usecase.TasksService
	ping    func(ctx context.Context) error
	closers []func(ctx context.Context) error
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: log}

	store, err := a.openStore(ctx)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	notifier, err := a.openNotifier(clock)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	a.service = usecase.NewTasksService(store, notifier, clock, log)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (usecase.TaskStore, error) {
	switch a.cfg.StorageDriver {
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, a.cfg.Database.ClientOptions())
		if err != nil {
			return nil, fmt.Errorf("connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)

		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			return nil, fmt.Errorf("ping MongoDB: %w", err)
		}

		repo := repository.GetTasksRepo(client, a.cfg.Database.DatabaseName, a.cfg.TasksCollection)
		if err := repository.SetupIndexes(repo.MongoCollection, a.log); err != nil {
			return nil, err
		}
		a.ping = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
		a.log.Info("storage ready", "driver", config.DriverMongo, "db", a.cfg.Database.DatabaseName)
		return repo, nil

	case config.DriverPostgres:
		repo, err := repository.NewPostgresTasksRepo(a.log, a.cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return repo.Close() })
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		a.ping = repo.Ping
		a.log.Info("storage ready", "driver", config.DriverPostgres)
		return repo, nil

	default:
		a.log.Info("storage ready", "driver", config.DriverMemory)
		return repository.NewMemoryTaskRepo(), nil
	}
}

func (a *app) openNotifier(clock func() time.Time) (usecase.Notifier, error) {
	ttls := services.NoticeTTLs{Acknowledgment: a.cfg.NoticeTTL, Celebration: a.cfg.CelebrationTTL}
	if a.cfg.RedisURL == "" {
		return services.NewMemoryNotifier(ttls, clock), nil
	}
	notifier, err := services.NewRedisNotifier(a.cfg.RedisURL, ttls, clock)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func(context.Context) error { return notifier.Close() })
	return notifier, nil
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

package main

import (
	"context"
	"embed"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/comandaclub/comanda/internal/memory"
	"github.com/comandaclub/comanda/internal/mongo"
	"github.com/comandaclub/comanda/internal/restaurant"
	"github.com/comandaclub/comanda/pkg"
)

//go:embed seed.json
var seedFS embed.FS

const (
	appNamespace = "COMANDA"
	appName      = "comanda"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup with error: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	lifecycle := []interface{}{}

	repos, storageLifecycle, err := buildRepos(ctx, config, logger)
	if err != nil {
		log.Fatalf("%s(%s) cannot start storage: %v", appName, appVersion, err)
	}
	if storageLifecycle != nil {
		lifecycle = append(lifecycle, *storageLifecycle)
	}

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	publisher, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	}
	lifecycle = append(lifecycle, publisherLifecycle)

	subscriber, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	activity := restaurant.NewActivityFeed(subscriber, 0, logger)
	activityLifecycle := apt.LifecycleHooks{
		OnStart: activity.Start,
		OnStop: func(context.Context) error {
			return subscriber.Close()
		},
	}
	lifecycle = append(lifecycle, activityLifecycle)

	workflow := restaurant.NewWorkflow(repos, publisher, logger)
	tokens := restaurant.NewTokenStore(0)

	hd := restaurant.HandlerDeps{
		Repos:    repos,
		Workflow: workflow,
		Tokens:   tokens,
		Activity: activity,
	}

	handler := restaurant.NewHandler(
		hd,
		config,
		logger,
	)

	seedHooks := apt.LifecycleHooks{
		OnStart: restaurant.SeedingFunc(seedCtx, repos, seedFS, config, logger),
		OnStop:  restaurant.StopFunc(cancelSeeds),
	}
	lifecycle = append(lifecycle, seedHooks)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true, // Internal API service
	})
	stack = append(stack, middleware.InternalOnly())

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(lifecycle...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

// buildRepos wires the storage backend selected by storage.backend:
// "mongo" for the durable backend, anything else gets the in-memory
// one.
func buildRepos(ctx context.Context, config *apt.Config, logger apt.Logger) (restaurant.Repos, *apt.LifecycleHooks, error) {
	backend := config.GetStringOrDef("storage.backend", "memory")

	if backend == "mongo" {
		base := mongo.NewBaseRepo(config, logger)
		if err := base.Start(ctx); err != nil {
			return restaurant.Repos{}, nil, err
		}

		repos, err := mongo.BuildRepos(ctx, base)
		if err != nil {
			return restaurant.Repos{}, nil, err
		}

		hooks := apt.LifecycleHooks{
			OnStop: func(stopCtx context.Context) error {
				return base.Stop(stopCtx)
			},
		}

		logger.Info("Using MongoDB storage backend")
		return repos, &hooks, nil
	}

	repos := restaurant.Repos{
		MenuItemRepo:    memory.NewMenuItemRepo(),
		TableRepo:       memory.NewTableRepo(),
		ReservationRepo: memory.NewReservationRepo(),
		OrderRepo:       memory.NewOrderRepo(),
		BillRepo:        memory.NewBillRepo(),
		StaffRepo:       memory.NewStaffRepo(),
	}

	logger.Info("Using in-memory storage backend")
	return repos, nil, nil
}

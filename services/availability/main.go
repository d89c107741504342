package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"
	"github.com/appetiteclub/carta/pkg"
	"github.com/appetiteclub/carta/services/availability/internal/availability"
	"github.com/appetiteclub/carta/services/availability/internal/business"
	"github.com/appetiteclub/carta/services/availability/internal/mongo"
	"github.com/appetiteclub/carta/services/availability/seeding"
)

const (
	appNamespace = "AVAILABILITY"
	appName      = "availability"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
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

	scheduleRepo := mongo.NewScheduleRepo(config, logger)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	sub, err := pkg.NewNATSSubscriber(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
	}

	snapshotCache := availability.NewScheduleSnapshotCache(scheduleRepo, logger)
	scheduleChangeSub := availability.NewScheduleChangeSubscriber(sub, snapshotCache, logger)

	businessURL := config.GetStringOrDef("services.business.url", "http://localhost:8086")
	businessClient := business.NewHTTPClient(businessURL)

	resolver := availability.NewResolver(availability.ResolverDeps{
		Schedules: snapshotCache,
		Business:  businessClient,
	}, logger)

	hd := availability.HandlerDeps{
		Resolver:     resolver,
		ScheduleRepo: scheduleRepo,
		Publisher:    pub,
	}

	handler := availability.NewHandler(hd, config, logger)

	// Setup demo seeding if enabled
	demoEnabled, _ := config.GetString("seeding.demo")
	var seedHooks apt.LifecycleHooks
	if demoEnabled == "true" {
		logger.Info("Demo seeding enabled for availability service")
		seedHooks = apt.LifecycleHooks{
			OnStart: seeding.SeedingFunc(appName, scheduleRepo.GetDatabase, logger),
		}
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	subLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return sub.Close()
		},
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
		// Customer-facing resolution endpoints are served through the
		// public gateway, which handles CORS.
		DisableCORS: true,
	})

	lifecycles := []interface{}{
		scheduleRepo,
		scheduleChangeSub,
		publisherLifecycle,
		subLifecycle,
	}
	if demoEnabled == "true" {
		lifecycles = append(lifecycles, seedHooks)
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", handler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/ornidex/ornidex/internal/config"
	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/infra/database"
	"github.com/ornidex/ornidex/internal/infra/exportstore"
	"github.com/ornidex/ornidex/internal/present/rest"
	"github.com/ornidex/ornidex/internal/present/rest/middleware"
	"github.com/ornidex/ornidex/internal/service"
	"github.com/ornidex/ornidex/internal/usecase"

	repo "github.com/ornidex/ornidex/internal/infra/repository"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up tracing: " + err.Error())
		}
		defer shutdown()
	}

	ttl := time.Duration(conf.Server.ExportTTL) * time.Second
	if conf.Server.ExportTTL <= 0 {
		ttl = exportstore.DefaultTTL * time.Second
	}

	var signal *service.SignalService
	var store usecase.ExportStore
	switch {
	case conf.Server.RedisAddr != "":
		rdb := database.NewRedis(conf.Server.RedisAddr, "", conf.Server.RedisDB)
		signal = service.NewSignalService(rdb)
		store = exportstore.NewRedis(rdb, ttl)
	case conf.Server.MemcachedAddr != "":
		mc := database.NewMemcached(conf.Server.MemcachedAddr)
		store = exportstore.NewMemcached(mc, ttl)
	default:
		store = exportstore.NewMemory(ttl)
	}

	observers := usecase.NewReferenceService[domain.Observer](
		repo.NewObserverRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindObserver, OpenCreation: conf.Open.Observers, GuardDeletion: true},
	)
	departments := usecase.NewReferenceService[domain.Department](
		repo.NewDepartmentRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindDepartment, OpenCreation: conf.Open.Departments, GuardDeletion: true},
	).WithParentLookup(repo.DepartmentOfTown(db))
	towns := usecase.NewReferenceService[domain.Town](
		repo.NewTownRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindTown, OpenCreation: conf.Open.Towns, GuardDeletion: true},
	).WithParentLookup(repo.TownOfLocality(db))
	localities := usecase.NewReferenceService[domain.Locality](
		repo.NewLocalityRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindLocality, OpenCreation: conf.Open.Localities, GuardDeletion: true},
	)
	weathers := usecase.NewReferenceService[domain.Weather](
		repo.NewWeatherRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindWeather, OpenCreation: conf.Open.Weathers, GuardDeletion: true},
	)
	classes := usecase.NewReferenceService[domain.SpeciesClass](
		repo.NewSpeciesClassRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindSpeciesClass, OpenCreation: conf.Open.Classes, GuardDeletion: true},
	).WithParentLookup(repo.SpeciesClassOfSpecies(db))
	species := usecase.NewSpeciesService(
		repo.NewSpeciesRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindSpecies, OpenCreation: conf.Open.Species, GuardDeletion: true},
	)
	ages := usecase.NewReferenceService[domain.Age](
		repo.NewAgeRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindAge, OpenCreation: conf.Open.Ages, GuardDeletion: true},
	)
	sexes := usecase.NewReferenceService[domain.Sex](
		repo.NewSexRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindSex, OpenCreation: conf.Open.Sexes, GuardDeletion: true},
	)
	behaviors := usecase.NewReferenceService[domain.Behavior](
		repo.NewBehaviorRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindBehavior, OpenCreation: conf.Open.Behaviors, GuardDeletion: true},
	)
	environments := usecase.NewReferenceService[domain.Environment](
		repo.NewEnvironmentRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindEnvironment, OpenCreation: conf.Open.Environments, GuardDeletion: true},
	)
	distances := usecase.NewReferenceService[domain.DistanceEstimate](
		repo.NewDistanceEstimateRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindDistanceEstimate, OpenCreation: conf.Open.Distances, GuardDeletion: true},
	)
	numbers := usecase.NewReferenceService[domain.NumberEstimate](
		repo.NewNumberEstimateRepository(db),
		usecase.ReferenceConfig{Kind: domain.KindNumberEstimate, OpenCreation: conf.Open.Numbers, GuardDeletion: true},
	)

	entryRepo := repo.NewEntryRepository(db)
	inventoryRepo := repo.NewInventoryRepository(db)
	inventories := usecase.NewInventoryService(inventoryRepo)

	// Avoid handing a typed nil to the interface parameter.
	var entrySignal usecase.Signal
	if signal != nil {
		entrySignal = signal
	}
	entries := usecase.NewEntryService(entryRepo, inventoryRepo, entrySignal)

	export := usecase.NewExportService(usecase.ExportDeps{
		Entries:      entries,
		Inventories:  inventories,
		Observers:    observers,
		Departments:  departments,
		Towns:        towns,
		Localities:   localities,
		Weathers:     weathers,
		Classes:      classes,
		Species:      species,
		Ages:         ages,
		Sexes:        sexes,
		Numbers:      numbers,
		Distances:    distances,
		Behaviors:    behaviors,
		Environments: environments,
		Store:        store,
	})

	auth := service.NewAuthService(conf.Auth.Secret, conf.Auth.Audience)
	authMiddleware := middleware.NewAuthMiddleware(auth)

	var feed rest.RealtimeFeed
	if signal != nil {
		feed = signal
	}

	handler := rest.NewHandler(rest.HandlerDeps{
		Observers:    observers,
		Departments:  departments,
		Towns:        towns,
		Localities:   localities,
		Weathers:     weathers,
		Classes:      classes,
		Species:      species,
		Ages:         ages,
		Sexes:        sexes,
		Behaviors:    behaviors,
		Environments: environments,
		Distances:    distances,
		Numbers:      numbers,
		Inventories:  inventories,
		Entries:      entries,
		Export:       export,
		Signal:       feed,
	})

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("ornidex"))
	}
	e.Use(authMiddleware.IdentifyRequester)

	handler.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName("ornidex")))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("failed to shut down tracer provider", slog.String("error", err.Error()))
		}
	}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/silverharvest/harvest-system/internal/api"
	"github.com/silverharvest/harvest-system/internal/api/handler"
	"github.com/silverharvest/harvest-system/internal/core/authz"
	"github.com/silverharvest/harvest-system/internal/core/ports"
	"github.com/silverharvest/harvest-system/internal/core/service"
	"github.com/silverharvest/harvest-system/internal/infrastructure/config"
	"github.com/silverharvest/harvest-system/internal/infrastructure/db/memory"
	"github.com/silverharvest/harvest-system/internal/infrastructure/db/mongo"
	"github.com/silverharvest/harvest-system/internal/infrastructure/db/postgres"
	"github.com/silverharvest/harvest-system/internal/infrastructure/db/redis"
	"github.com/silverharvest/harvest-system/pkg/logger"
	"github.com/silverharvest/harvest-system/pkg/password"
	"github.com/silverharvest/harvest-system/pkg/token"
)

const serviceName = "silver-harvest"

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Str("service", serviceName).Logger()
		l.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	tokens, err := token.NewService(cfg.Auth.JWTSecret, token.WithTTL(cfg.Auth.TokenTTL))
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close(log)

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer client.Close()
		idem = redis.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		st.checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, client, 0) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	}

	e := api.NewRouter(api.Dependencies{
		Logger:       log,
		Tokens:       tokens,
		Gate:         authz.NewGate(authz.DefaultPolicy()),
		Auth:         service.NewAuthService(st.users, password.NewHasher(cfg.Auth.BcryptCost), tokens, logger.Component("auth")),
		Equipment:    service.NewEquipmentService(st.equipment, idem, logger.Component("equipment")),
		Vehicles:     service.NewVehicleService(st.vehicles, idem, logger.Component("vehicle")),
		HealthChecks: st.checks,
		AllowOrigins: cfg.CORSOrigins,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type store struct {
	users     ports.UserRepository
	equipment ports.EquipmentRepository
	vehicles  ports.VehicleRepository
	checks    map[string]handler.PingFunc
	closeFn   func(context.Context) error
}

func (s *store) close(log zerolog.Logger) {
	if s.closeFn == nil {
		return
	}
	if err := s.closeFn(context.Background()); err != nil {
		log.Error().Err(err).Msg("close store")
	}
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &store{
			users: m.Users, equipment: m.Equipment, vehicles: m.Vehicles,
			checks:  map[string]handler.PingFunc{"mongo": m.Ping},
			closeFn: m.Close,
		}, nil

	case config.DriverPostgres:
		p, err := postgres.Open(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		return &store{
			users: p.Users, equipment: p.Equipment, vehicles: p.Vehicles,
			checks:  map[string]handler.PingFunc{"postgres": p.Ping},
			closeFn: func(context.Context) error { p.Close(); return nil },
		}, nil

	default:
		log.Warn().Msg("using in-memory store; data is lost on restart")
		m := memory.NewStore()
		return &store{
			users: m.Users(), equipment: m.Equipment(), vehicles: m.Vehicles(),
			checks: map[string]handler.PingFunc{"memory": m.Ping},
		}, nil
	}
}

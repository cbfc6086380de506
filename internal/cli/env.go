package cli

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"insecticide/internal/config"
	"insecticide/internal/logging"
	"insecticide/internal/storage"
	"insecticide/internal/suite"
)

// SuiteSet registers the suites a binary ships with
type SuiteSet func(reg *suite.Registry, logger *zap.Logger) error

// Environment is the state shared by commands once configuration is resolved
type Environment struct {
	Config   *config.Config
	Store    storage.ConfigStore
	Logger   *zap.Logger
	Registry *suite.Registry

	suites  SuiteSet
	closers []func()
}

// NewEnvironment creates an uninitialized Environment
func NewEnvironment(suites SuiteSet) *Environment {
	return &Environment{suites: suites}
}

// Init reads the config file, round-trips it through the config store, and
// builds the logger and suite registry.
func (e *Environment) Init(ctx context.Context, flags *Flags) error {
	values, err := config.ReadValues(flags.ConfigFile, config.DefaultEnvFile)
	if err != nil {
		return err
	}

	// The store location comes from the file, the effective config from the store
	boot, err := config.Resolve(config.WithEnv(values), flags.ToConfigFlags())
	if err != nil {
		return err
	}
	store, err := OpenConfigStore(ctx, boot)
	if err != nil {
		return err
	}
	e.Store = store
	e.closers = append(e.closers, func() { _ = store.Close() })

	cfg, err := config.Load(ctx, store, values, flags.ToConfigFlags())
	if err != nil {
		return err
	}
	e.Config = cfg

	logger, cleanup, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	e.Logger = logger
	e.closers = append(e.closers, cleanup)

	e.Registry = suite.NewRegistry()
	if e.suites != nil {
		if err := e.suites(e.Registry, logger); err != nil {
			return fmt.Errorf("failed to register suites: %w", err)
		}
	}
	return nil
}

// Close releases resources in reverse order of acquisition
func (e *Environment) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// OpenConfigStore opens the configuration store selected by cfg
func OpenConfigStore(ctx context.Context, cfg *config.Config) (storage.ConfigStore, error) {
	switch cfg.ConfigStore {
	case config.StoreRedis:
		return storage.OpenRedisConfigStore(ctx, cfg.RedisAddr)
	default:
		return storage.OpenLevelDBConfigStore(cfg.GetConfigDBPath())
	}
}

// OpenResultLog opens the result log selected by cfg
func OpenResultLog(ctx context.Context, cfg *config.Config) (storage.ResultLog, error) {
	switch cfg.ResultLog {
	case config.ResultLogMySQL, config.ResultLogPostgres:
		dialect, err := storage.DialectByName(cfg.ResultLog)
		if err != nil {
			return nil, err
		}
		return storage.OpenSQLResultLog(ctx, dialect, cfg.ResultDSN, storage.DefaultTable)
	default:
		return storage.NewJSONResultLog(cfg.GetReportsPath()), nil
	}
}

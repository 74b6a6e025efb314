package cmd

import (
	"context"
	"os"

	"github.com/Iron-Ham/cogniload/internal/config"
	"github.com/Iron-Ham/cogniload/internal/engine"
	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/Iron-Ham/cogniload/internal/logging"
	"github.com/Iron-Ham/cogniload/internal/metrics"
	"github.com/Iron-Ham/cogniload/internal/store"
)

// session bundles everything a command needs for one invocation.
type session struct {
	cfg     *config.Config
	store   *store.Store
	engine  *engine.Engine
	logger  *logging.Logger
	metrics *metrics.Metrics

	stopWatch context.CancelFunc
}

// openSession loads configuration and opens the store and engine it names.
// Callers must Close the session.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	dir := cfg.Store.ResolvedDir()
	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create data directory %s", dir)
		}
		l, err := logging.NewLogger(dir, cfg.Logging.Level)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log")
		}
		logger = l
	}

	_, m := metrics.NewRegistry()

	medium, err := store.OpenMedium(cfg.Store.Backend, dir)
	if err != nil {
		_ = logger.Close()
		return nil, errors.Wrapf(err, "failed to open %s store", cfg.Store.Backend)
	}
	kv := store.New(medium, store.WithLogger(logger), store.WithMetrics(m))

	eng := engine.New(kv,
		engine.WithLogger(logger),
		engine.WithMetrics(m),
		engine.WithOverloadThreshold(cfg.Forecast.OverloadThreshold),
		engine.WithForecastDays(cfg.Forecast.Days))

	if cfg.Store.SeedDemo {
		eng.Bootstrap()
	}

	s := &session{cfg: cfg, store: kv, engine: eng, logger: logger, metrics: m}
	if cfg.Store.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopWatch = cancel
		go func() {
			if err := kv.Watch(ctx); err != nil {
				logger.Warn("store watch stopped", "error", err.Error())
			}
		}()
	}
	return s, nil
}

// Close releases the store and log file.
func (s *session) Close() {
	if s.stopWatch != nil {
		s.stopWatch()
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing store failed", "error", err.Error())
	}
	_ = s.logger.Close()
}

// withSession opens a session, runs fn and closes the session.
func withSession(fn func(*session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	err = fn(s)
	logFailure(s.logger, err)
	return err
}

// logFailure records a failed command. Rejected input is routine and logged
// at info; everything else at the level its severity calls for.
func logFailure(logger *logging.Logger, err error) {
	if err == nil {
		return
	}
	if errors.IsUserFacing(err) {
		logger.Info("command rejected input", "error", err.Error())
		return
	}
	switch errors.GetSeverity(err) {
	case errors.SeverityDebug, errors.SeverityInfo:
		logger.Debug("command failed", "error", err.Error())
	case errors.SeverityWarning:
		logger.Warn("command failed", "error", err.Error())
	default:
		logger.Error("command failed", "error", err.Error())
	}
}

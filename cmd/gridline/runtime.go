package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hylla/gridline/internal/adapters/server/common"
	"github.com/hylla/gridline/internal/adapters/storage/remote"
	"github.com/hylla/gridline/internal/adapters/storage/sqlite"
	"github.com/hylla/gridline/internal/app"
	"github.com/hylla/gridline/internal/config"
	"github.com/hylla/gridline/internal/platform"
)

// runtimeEnv is the resolved configuration, logger and layout service for one command.
type runtimeEnv struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
	layouts    *app.LayoutService
	readiness  common.ReadinessChecker
	closers    []func() error
}

// openRuntime resolves paths and config, then opens the configured layout backend.
// The console command mutes console logging so the grid renders cleanly.
func openRuntime(opts *rootOptions, command string) (*runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{AppName: opts.appName, DevMode: opts.devMode})
	if err != nil {
		return nil, err
	}

	configPath := strings.TrimSpace(opts.configPath)
	if configPath == "" {
		configPath = firstNonEmpty(os.Getenv("GRIDLINE_CONFIG"), paths.ConfigPath)
	}
	dbPath := strings.TrimSpace(opts.dbPath)
	dbOverridden := dbPath != ""
	if !dbOverridden {
		if envPath := strings.TrimSpace(os.Getenv("GRIDLINE_DB_PATH")); envPath != "" {
			dbPath = envPath
			dbOverridden = true
		} else {
			dbPath = paths.DBPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(dbPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if dbOverridden {
		cfg.Database.Path = dbPath
	}

	logger, err := newRuntimeLogger(opts.stderr, paths.AppName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "console" {
		logger.SetConsoleEnabled(false)
	}
	rt := &runtimeEnv{
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
		closers:    []func() error{logger.Close},
	}

	logger.Info("startup configuration resolved", "app", paths.AppName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "db_path", dbPath)
	logger.Info("configuration loaded", "config_path", configPath, "layout_backend", cfg.Layout.Backend, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	repo, err := rt.openRepository()
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.layouts = app.NewLayoutService(repo, logger, nil, app.LayoutServiceConfig{
		LoadTimeout: cfg.Layout.LoadTimeoutDuration(),
		SaveTimeout: cfg.Layout.SaveTimeoutDuration(),
	})
	logger.Debug("layout service initialized", "load_timeout", cfg.Layout.LoadTimeoutDuration(), "save_timeout", cfg.Layout.SaveTimeoutDuration())
	return rt, nil
}

// openRepository opens the layout backend selected by config.
func (rt *runtimeEnv) openRepository() (app.LayoutRepository, error) {
	switch rt.cfg.Layout.Backend {
	case config.LayoutBackendRemote:
		rt.logger.Info("using remote layout backend", "remote_url", rt.cfg.Layout.RemoteURL)
		repo, err := remote.New(rt.cfg.Layout.RemoteURL)
		if err != nil {
			rt.logger.Error("remote layout backend rejected", "remote_url", rt.cfg.Layout.RemoteURL, "err", err)
			return nil, fmt.Errorf("open remote layout backend: %w", err)
		}
		rt.readiness = repo
		return repo, nil
	default:
		dbPath := rt.cfg.Database.Path
		rt.logger.Info("opening sqlite repository", "db_path", dbPath)
		repo, err := sqlite.Open(dbPath)
		if err != nil {
			rt.logger.Error("sqlite open failed", "db_path", dbPath, "err", err)
			return nil, fmt.Errorf("open sqlite repository: %w", err)
		}
		rt.closers = append(rt.closers, func() error {
			if err := repo.Close(); err != nil {
				rt.logger.Warn("sqlite close failed", "db_path", dbPath, "err", err)
				return err
			}
			return nil
		})
		rt.logger.Info("sqlite repository ready", "db_path", dbPath, "migrations", "ensured")
		rt.readiness = repo
		return repo, nil
	}
}

// Close waits for pending layout saves, then releases the backend and log sinks in reverse order.
func (rt *runtimeEnv) Close() error {
	if rt == nil {
		return nil
	}
	if rt.layouts != nil {
		rt.layouts.Wait()
	}
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

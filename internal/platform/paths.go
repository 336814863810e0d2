package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultAppName names the config and data directories when no override is given.
const DefaultAppName = "gridline"

// ErrEmptyBaseDir reports a missing user config or data directory.
var ErrEmptyBaseDir = errors.New("empty base dirs")

// Paths holds the resolved on-disk locations for one app name.
type Paths struct {
	AppName    string
	ConfigPath string
	DataDir    string
	DBPath     string
	LogDir     string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// DefaultPaths returns paths for DefaultAppName.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{})
}

// DefaultPathsWithOptions resolves paths from the current user and environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	dataDir := configDir
	if runtime.GOOS == "linux" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return Paths{}, fmt.Errorf("user home dir: %w", homeErr)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return PathsFor(runtime.GOOS, os.Getenv, configDir, dataDir, AppName(opts))
}

// AppName returns the directory name for opts. Dev mode gets its own directories.
func AppName(opts Options) string {
	name := strings.TrimSpace(opts.AppName)
	if name == "" {
		name = DefaultAppName
	}
	if opts.DevMode && !strings.HasSuffix(name, "-dev") {
		name += "-dev"
	}
	return name
}

// PathsFor resolves paths for goos from explicit base dirs. getenv supplies XDG and AppData overrides.
func PathsFor(goos string, getenv func(string) string, userConfigDir, userDataDir, appName string) (Paths, error) {
	if userConfigDir == "" || userDataDir == "" {
		return Paths{}, ErrEmptyBaseDir
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	configBase, dataBase := userConfigDir, userDataDir
	switch goos {
	case "linux":
		configBase = firstNonEmpty(getenv("XDG_CONFIG_HOME"), configBase)
		dataBase = firstNonEmpty(getenv("XDG_DATA_HOME"), dataBase)
	case "windows":
		configBase = firstNonEmpty(getenv("APPDATA"), configBase)
		dataBase = firstNonEmpty(getenv("LOCALAPPDATA"), dataBase)
	}

	appDataDir := filepath.Join(dataBase, appName)
	return Paths{
		AppName:    appName,
		ConfigPath: filepath.Join(configBase, appName, "config.toml"),
		DataDir:    appDataDir,
		DBPath:     filepath.Join(appDataDir, appName+".db"),
		LogDir:     filepath.Join(appDataDir, "log"),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

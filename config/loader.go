package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "gpsrgen.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/gpsrgen"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	workDir string
	homeDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	if cwd, err := os.Getwd(); err == nil {
		l.workDir = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.homeDir = home
	}
	return l
}

// WithDirs overrides the working and home directories the loader searches.
func (l *Loader) WithDirs(workDir, homeDir string) *Loader {
	l.workDir = workDir
	l.homeDir = homeDir
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/gpsrgen/config.yaml)
// 3. Project config (gpsrgen.yaml in current or parent directories)
// 4. Explicit config file (explicitPath, if not empty; must exist)
// 5. Environment variables (GPSRGEN_*)
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	// Load user config
	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if userConfig, err := loadOverlay(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Load project config
	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := loadOverlay(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// Load explicit config
	if explicitPath != "" {
		explicitConfig, err := loadOverlay(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", explicitPath))
		config.Merge(explicitConfig)
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	// Auto-detect base dir if not set
	if config.Documents.BaseDir == "" {
		switch {
		case explicitPath != "":
			config.Documents.BaseDir = filepath.Dir(explicitPath)
		case projectConfigPath != "":
			config.Documents.BaseDir = filepath.Dir(projectConfigPath)
		default:
			config.Documents.BaseDir = l.workDir
		}
		l.logger.Debug("Using base directory", slog.String("path", config.Documents.BaseDir))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureProjectConfig writes a default gpsrgen.yaml into dir unless one
// exists. It returns the path and whether a file was created.
func (l *Loader) EnsureProjectConfig(dir string) (string, bool, error) {
	path := filepath.Join(dir, ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", false, err
	}

	l.logger.Info("Created default project config", slog.String("path", path))
	return path, true, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	if l.homeDir == "" {
		return ""
	}
	return filepath.Join(l.homeDir, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for gpsrgen.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	if l.workDir == "" {
		return ""
	}

	dir := l.workDir
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for labelwires
	EnvDataDir = "LABELWIRES_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for labelwires
	EnvConfigDir = "LABELWIRES_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG base directory
	AppDirName = "labelwires"

	// SettingsFileName is the name of the settings file in the config dir
	SettingsFileName = "settings.toml"

	// ConnectionsFileName is the default connection file in the data dir
	ConnectionsFileName = "connections.json"

	// LogFileName is the name of the log file
	LogFileName = "labelwires.log"
)

// Paths provides the default locations for labelwires files
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	SettingsPath() string
	ConnectionsPath() string
	LogFilePath() string
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgState  string
}

// New creates a Paths instance from the environment.
func New() Paths {
	p := &paths{}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.xdgData = ExpandHome(dataDir)
	} else {
		p.xdgData = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = ExpandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	// XDG_STATE_HOME is read directly so tests can redirect it
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

func (p *paths) DataDir() string {
	return p.xdgData
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) StateDir() string {
	return p.xdgState
}

// SettingsPath returns the default settings file location
func (p *paths) SettingsPath() string {
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

// ConnectionsPath returns the default connection file location
func (p *paths) ConnectionsPath() string {
	return filepath.Join(p.xdgData, ConnectionsFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "PINBOARD_CONFIG"
	// ConfigFileName is the file looked for in the working directory
	ConfigFileName = "pinboard.yaml"
	// ConfigDirName is the config directory name under XDG and /etc
	ConfigDirName = "pinboard"
)

// SearchPaths lists the config locations in priority order: the
// $PINBOARD_CONFIG file, ./pinboard.yaml, $XDG_CONFIG_HOME/pinboard,
// ~/.config/pinboard and /etc/pinboard. Unset variables are skipped.
func SearchPaths() []string {
	var paths []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, ConfigFileName)
	for _, dir := range userConfigDirs() {
		paths = append(paths, filepath.Join(dir, ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

func userConfigDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, xdg)
	}
	if home := os.Getenv("HOME"); home != "" {
		dirs = append(dirs, filepath.Join(home, ".config"))
	}
	return dirs
}

// FindConfigPath returns the first existing file from SearchPaths, made
// absolute when it is relative. It returns "" when none exists.
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultConfigPath returns where a new config file should be written: the
// first user config directory, or the working directory without one.
func DefaultConfigPath() string {
	if dirs := userConfigDirs(); len(dirs) > 0 {
		return filepath.Join(dirs[0], ConfigDirName, "config.yaml")
	}
	return ConfigFileName
}

// EnsureConfigDir creates the directory holding configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

// Package loader locates, parses, and serializes the on-disk
// configuration layers and derives the environment overlay.
//
// Files are TOML or YAML, selected by extension; files with an unknown
// extension are parsed by trying TOML first and falling back to YAML.
package loader

import (
	"os"
	"path/filepath"
)

const (
	// EnvPrefix is the prefix for configuration environment variables.
	EnvPrefix = "TASKWRIGHT_"

	// ConfigDirEnv overrides the directory holding the global file. It
	// configures the loader itself and is never part of the overlay.
	ConfigDirEnv = "TASKWRIGHT_CONFIG_DIR"

	appDirName      = "taskwright"
	localDirName    = ".taskwright"
	defaultFileName = "config.toml"
)

// fileCandidates are the accepted file names inside a config directory,
// in lookup order. The TOML name is the default for new files.
var fileCandidates = []string{"config.toml", "config.yaml", "config.yml"}

// legacyFileNames are the historical per-user dotfile locations, kept
// for installs that predate the config directory.
var legacyFileNames = []string{".taskwright.toml", ".taskwright.yaml"}

// GlobalPath resolves the user-wide configuration file: the override
// directory from TASKWRIGHT_CONFIG_DIR when set, else the conventional
// per-user config directory, else the legacy home dotfile when only
// that exists.
func GlobalPath() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return pickCandidate(dir)
	}

	if dir, err := os.UserConfigDir(); err == nil {
		path := pickCandidate(filepath.Join(dir, appDirName))
		if !fileExists(path) {
			if legacy := legacyPath(); legacy != "" {
				return legacy
			}
		}
		return path
	}

	if legacy := legacyPath(); legacy != "" {
		return legacy
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName, defaultFileName)
}

// LocalPath resolves the project-local configuration file under the
// given project root.
func LocalPath(root string) string {
	return pickCandidate(filepath.Join(root, localDirName))
}

// pickCandidate returns the first existing candidate file in dir, or
// the default TOML path when none exists yet.
func pickCandidate(dir string) string {
	for _, name := range fileCandidates {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return filepath.Join(dir, defaultFileName)
}

func legacyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range legacyFileNames {
		path := filepath.Join(home, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

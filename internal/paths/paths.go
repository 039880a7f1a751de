package paths

import (
	"os"
	"path/filepath"
)

// GetHome returns STUDYCAL_HOME or the ~/.studycal default
func GetHome() string {
	home := os.Getenv("STUDYCAL_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".studycal"
		}
		return filepath.Join(homeDir, ".studycal")
	}
	return ExpandPath(home)
}

// GetDBPath returns $STUDYCAL_HOME/studycal.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "studycal.db")
}

// GetConfigPath returns $STUDYCAL_HOME/config.json
func GetConfigPath() string {
	return filepath.Join(GetHome(), "config.json")
}

// GetLockPath returns $STUDYCAL_HOME/studycal.lock
func GetLockPath() string {
	return filepath.Join(GetHome(), "studycal.lock")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}

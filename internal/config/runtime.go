package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimePath = ".threadbot"

func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("THREAD_RUNTIME_PATH"))
}

// resolveRuntimePath anchors relative paths in the user's home directory.
func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimePath
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

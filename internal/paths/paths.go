// Package paths resolves the schema and projects directory locations.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative default directory names.
const (
	DefaultSchemaDirName   = "config"
	DefaultProjectsDirName = "projects"
)

// Environment variable names for directory overrides.
const (
	EnvSchemaDir   = "REQMASTER_SCHEMA_DIR"
	EnvProjectsDir = "REQMASTER_PROJECTS_DIR"
)

// getwd can be overridden in tests.
var getwd = os.Getwd

// ResolveSchemaDir returns the schema directory following the precedence
// chain: flag > configValue > REQMASTER_SCHEMA_DIR env > $(CWD)/config.
func ResolveSchemaDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvSchemaDir, DefaultSchemaDirName)
}

// ResolveProjectsDir returns the projects root following the precedence
// chain: flag > configValue > REQMASTER_PROJECTS_DIR env > $(CWD)/projects.
func ResolveProjectsDir(flag, configValue string) (string, error) {
	return resolve(flag, configValue, EnvProjectsDir, DefaultProjectsDirName)
}

func resolve(flag, configValue, envName, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(envName); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, defaultName), nil
}

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

const (
	configFileName = "reqmaster"
	configFileType = "yaml"
	configFileExt  = "reqmaster.yaml"
	dotEnvFile     = ".env"
	envPrefix      = "REQMASTER"

	cfgKeyBackend     = "backend"
	cfgKeySchemaDir   = "schema_dir"
	cfgKeyProjectsDir = "projects_dir"
	cfgKeyDatabase    = "database"
	cfgKeyLogLevel    = "log_level"
	cfgKeyLogFormat   = "log_format"

	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// defaultConfigYAML is the content written by init.
const defaultConfigYAML = `# reqmaster configuration

# Storage backend: files, sqlite or memory.
backend: files

# Directories (overridable by --schema-dir and --projects-dir).
# schema_dir: config
# projects_dir: projects

# SQLite database file for the sqlite backend.
# database: projects/reqmaster.db

# Logging.
log_level: info
log_format: console
`

// loadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the tool configuration into a.v. Values come from, in
// decreasing priority: flags, REQMASTER_* environment, the config file,
// then defaults. A missing ./reqmaster.yaml is not an error; a missing
// file named by --config is, unless optional is set.
func (a *app) loadConfig(optional bool) error {
	v := a.v
	v.SetDefault(cfgKeyBackend, types.BackendFiles)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyDatabase, cfgKeyLogLevel, cfgKeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	read := true
	if a.flags.configFile != "" {
		if _, err := os.Stat(a.flags.configFile); err != nil {
			if !optional || !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("read config: %w", err)
			}
			read = false
		}
		v.SetConfigFile(a.flags.configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if read {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	overrides := map[string]string{
		cfgKeyBackend:   a.flags.backend,
		cfgKeyDatabase:  a.flags.database,
		cfgKeyLogLevel:  a.flags.logLevel,
		cfgKeyLogFormat: a.flags.logFormat,
	}
	for key, value := range overrides {
		if value != "" {
			v.Set(key, value)
		}
	}
	return nil
}

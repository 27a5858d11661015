package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/reqmaster/internal/paths"
	"github.com/mesh-intelligence/reqmaster/internal/schema"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// sampleSchema is written to an empty schema directory by init.
const sampleSchema = "requirement_config.yaml"

// schemaUnit is the YAML shape of a schema configuration unit.
type schemaUnit struct {
	Fields []string `yaml:"fields"`
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file, schema directory and projects root",
		Long: "Write ./reqmaster.yaml if missing, create the schema directory with a sample\n" +
			"requirement schema when it holds none, and create the projects root.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOptionalConfig: "true"},
		RunE:        a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configPath := configFileExt
	if a.flags.configFile != "" {
		configPath = a.flags.configFile
	}
	if err := writeFileIfMissing(configPath, []byte(defaultConfigYAML)); err != nil {
		return fmt.Errorf("%w: write config: %w", types.ErrIO, err)
	}

	schemaDir, err := paths.ResolveSchemaDir(a.flags.schemaDir, a.v.GetString(cfgKeySchemaDir))
	if err != nil {
		return fmt.Errorf("%w: resolve schema dir: %w", types.ErrIO, err)
	}
	projectsDir, err := paths.ResolveProjectsDir(a.flags.projectsDir, a.v.GetString(cfgKeyProjectsDir))
	if err != nil {
		return fmt.Errorf("%w: resolve projects dir: %w", types.ErrIO, err)
	}

	for _, dir := range []string{schemaDir, projectsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %w", types.ErrIO, dir, err)
		}
	}

	if registry, _ := schema.Load(schemaDir); registry.Len() == 0 {
		data, err := yaml.Marshal(&schemaUnit{Fields: []string{types.FieldTitle, "Description"}})
		if err != nil {
			return fmt.Errorf("marshal sample schema: %w", err)
		}
		path := filepath.Join(schemaDir, sampleSchema)
		if err := writeFileIfMissing(path, data); err != nil {
			return fmt.Errorf("%w: write sample schema: %w", types.ErrIO, err)
		}
		a.log.Debug("sample schema written", zap.String("path", path))
	}

	fmt.Fprintln(a.stdout, "reqmaster initialized successfully")
	return nil
}

// writeFileIfMissing creates path with data unless it already exists.
func writeFileIfMissing(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

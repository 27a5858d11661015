// Package cli implements the reqmaster command-line interface. It is the
// adapter between operators and the core: it parses flags, loads tool
// configuration, renders results on stdout and logs diagnostics on stderr.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reqmaster/internal/paths"
	"github.com/mesh-intelligence/reqmaster/pkg/reqmaster"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Exit codes.
const (
	exitSuccess      = 0
	exitUserError    = 1
	exitSysError     = 2
	exitInconsistent = 3
	exitPartialLink  = 4
)

// annotationOptionalConfig marks commands that run without the file named
// by --config.
const annotationOptionalConfig = "optional-config"

// errInconsistent is returned by validate-links when the report is not clean.
var errInconsistent = errors.New("link validation found problems")

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile  string
	schemaDir   string
	projectsDir string
	backend     string
	database    string
	logLevel    string
	logFormat   string
	jsonMode    bool
}

// app carries the state shared by one command invocation.
type app struct {
	flags  rootFlags
	v      *viper.Viper
	log    *zap.Logger
	logged bool
	stdout io.Writer
	stderr io.Writer

	ws *reqmaster.Workspace
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:      viper.New(),
		log:    zap.NewNop(),
		stdout: stdout,
		stderr: stderr,
	}
}

// NewRootCmd creates the top-level "reqmaster" command writing to the
// process's standard streams.
func NewRootCmd() *cobra.Command {
	return newApp(os.Stdout, os.Stderr).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reqmaster",
		Short: "Requirement management over schema-typed objects and links",
		Long: "reqmaster stores requirement-like objects in projects, each shaped by a\n" +
			"configured schema, and keeps symmetric links between them consistent.",
		Version:       reqmaster.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Annotations[annotationOptionalConfig] == "true")
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "tool configuration file (default: ./reqmaster.yaml)")
	pf.StringVar(&a.flags.schemaDir, "schema-dir", "", "directory of <type>_config units (default: $(CWD)/config)")
	pf.StringVar(&a.flags.projectsDir, "projects-dir", "", "projects root (default: $(CWD)/projects)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: files, sqlite or memory (default: files)")
	pf.StringVar(&a.flags.database, "database", "", "SQLite database file (default: <projects-dir>/reqmaster.db)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error (default: info)")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "log format: console or json (default: console)")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		a.versionCmd(),
		a.initCmd(),
		a.createProjectCmd(),
		a.listProjectsCmd(),
		a.listTypesCmd(),
		a.createObjectCmd(),
		a.getObjectCmd(),
		a.editObjectCmd(),
		a.createLinkCmd(),
		a.listLinksCmd(),
		a.validateLinksCmd(),
		a.exportProjectCmd(),
		a.importProjectCmd(),
	)

	// --project_name and --project-name name the same flag.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	a.close()

	code := exitCode(err)
	if code != exitInconsistent {
		a.reportError(err)
	}
	return code
}

// reportError logs err, or prints it when the failure happened before
// logging was configured.
func (a *app) reportError(err error) {
	if !a.logged {
		fmt.Fprintln(a.stderr, "Error:", err)
		return
	}
	fields := []zap.Field{zap.Error(err)}
	var partial *types.PartialLinkError
	if errors.As(err, &partial) {
		fields = append(fields,
			zap.String("tx", partial.TxID),
			zap.String("written", partial.Written),
			zap.String("pending", partial.Pending),
		)
	}
	a.log.Error("command failed", fields...)
}

// exitCode maps an error to an exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, errInconsistent):
		return exitInconsistent
	case errors.Is(err, types.ErrPartialLink):
		return exitPartialLink
	case errors.Is(err, types.ErrIO), errors.Is(err, types.ErrMalformedRecord):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup loads configuration and builds the logger. The workspace is
// opened lazily by commands that need it.
func (a *app) setup(optionalConfig bool) error {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return err
	}
	if err := a.loadConfig(optionalConfig); err != nil {
		return err
	}
	a.log = newLogger(a.v.GetString(cfgKeyLogLevel), a.v.GetString(cfgKeyLogFormat), a.stderr)
	a.logged = true
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("configuration loaded", zap.String("file", used))
	}
	return nil
}

// workspace opens the workspace on first use. Schema units that failed to
// load are logged and skipped.
func (a *app) workspace() (*reqmaster.Workspace, error) {
	if a.ws != nil {
		return a.ws, nil
	}

	schemaDir, err := paths.ResolveSchemaDir(a.flags.schemaDir, a.v.GetString(cfgKeySchemaDir))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve schema dir: %w", types.ErrIO, err)
	}
	projectsDir, err := paths.ResolveProjectsDir(a.flags.projectsDir, a.v.GetString(cfgKeyProjectsDir))
	if err != nil {
		return nil, fmt.Errorf("%w: resolve projects dir: %w", types.ErrIO, err)
	}

	cfg := types.Config{
		Backend:      a.v.GetString(cfgKeyBackend),
		SchemaDir:    schemaDir,
		ProjectsDir:  projectsDir,
		DatabasePath: a.v.GetString(cfgKeyDatabase),
	}
	ws, err := reqmaster.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	for _, problem := range ws.SchemaProblems {
		a.log.Warn("skipped schema unit", zap.Error(problem))
	}
	a.log.Debug("workspace opened",
		zap.String("backend", cfg.Backend),
		zap.String("schema_dir", schemaDir),
		zap.String("projects_dir", projectsDir),
		zap.Strings("types", ws.Types()),
	)

	a.ws = ws
	return ws, nil
}

func (a *app) close() error {
	defer a.log.Sync() //nolint:errcheck
	if a.ws == nil {
		return nil
	}
	err := a.ws.Close()
	a.ws = nil
	return err
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated workspace with its own config file, schema
// directory and projects root.
type testEnv struct {
	t           *testing.T
	dir         string
	config      string
	schemaDir   string
	projectsDir string
}

func newTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()
	for _, key := range []string{"REQMASTER_BACKEND", "REQMASTER_DATABASE", "REQMASTER_LOG_LEVEL", "REQMASTER_LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	env := &testEnv{
		t:           t,
		dir:         dir,
		config:      filepath.Join(dir, "reqmaster.yaml"),
		schemaDir:   filepath.Join(dir, "config"),
		projectsDir: filepath.Join(dir, "projects"),
	}
	require.NoError(t, os.MkdirAll(env.schemaDir, 0o755))
	env.writeSchema("requirement_config.json", `{"fields": ["Title", "Description"]}`)

	cfg := "backend: " + backend + "\n" +
		"schema_dir: " + env.schemaDir + "\n" +
		"projects_dir: " + env.projectsDir + "\n" +
		"log_level: info\n"
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	return env
}

func (e *testEnv) writeSchema(name, content string) {
	e.t.Helper()
	require.NoError(e.t, os.WriteFile(filepath.Join(e.schemaDir, name), []byte(content), 0o644))
}

func (e *testEnv) objectPath(project, id string) string {
	return filepath.Join(e.projectsDir, project, "objects", id+".json")
}

// cmdResult holds the outcome of one CLI invocation.
type cmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// run executes the CLI in-process against the environment's config.
func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(append([]string{"--config", e.config}, args...), &stdout, &stderr)
	return cmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// mustRun runs args and fails the test on a non-zero exit code.
func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	res := e.run(args...)
	require.Equalf(e.t, exitSuccess, res.ExitCode, "args %v\nstdout: %s\nstderr: %s", args, res.Stdout, res.Stderr)
	return res
}

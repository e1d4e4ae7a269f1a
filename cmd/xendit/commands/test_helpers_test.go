package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const testSecretKey = "xnd_development_cli"

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// subcommandNames returns the names of a cobra command's direct subcommands.
func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

type apiRecorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *apiRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req.Clone(req.Context()))
}

func (r *apiRecorder) all() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*http.Request(nil), r.requests...)
}

// newAPI starts a fake Xendit API recording every request.
func newAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *apiRecorder) {
	t.Helper()

	recorder := &apiRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder.record(r)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server, recorder
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// runCommand executes sub under a fresh root with the global flags. Viper is
// global state, so callers must not run in parallel.
func runCommand(t *testing.T, sub *cobra.Command, stdin string, args ...string) runResult {
	t.Helper()

	return execute(t, sub, stdin, nil, args)
}

// runCommandWithConfig also reads the file named by --config before running.
func runCommandWithConfig(t *testing.T, sub *cobra.Command, args ...string) runResult {
	t.Helper()

	return execute(t, sub, "", func(*cobra.Command, []string) error { return InitConfig() }, args)
}

func execute(t *testing.T, sub *cobra.Command, stdin string, preRun func(*cobra.Command, []string) error, args []string) runResult {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	root := &cobra.Command{Use: "xendit", SilenceUsage: true, SilenceErrors: true, PersistentPreRunE: preRun}
	AddGlobalFlags(root)
	root.AddCommand(sub)

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// apiArgs returns the flags pointing the CLI at server.
func apiArgs(server *httptest.Server, extra ...string) []string {
	return append([]string{"--api", server.URL, "--secret-key", testSecretKey}, extra...)
}

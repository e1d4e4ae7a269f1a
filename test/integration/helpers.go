//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/fivetwenty-io/xendit-client/pkg/xenditclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	SecretKey  string
	API        string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		SecretKey:  os.Getenv(xenditclient.EnvSecretKey),
		API:        os.Getenv(xenditclient.EnvAPI),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("XENDIT_VERBOSE") == "true",
	}
}

func getBinaryPath() string {
	if path := os.Getenv("XENDIT_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../xendit",
		"./xendit",
		"../xendit",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "xendit"
}

// SkipIfMissingConfig skips the test unless a development secret key is set.
// Live keys are refused so the suite never moves real money.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.SecretKey == "" {
		t.Skip("XENDIT_SECRET_KEY not set, skipping integration test")
	}

	if !strings.HasPrefix(config.SecretKey, "xnd_development_") {
		t.Skip("XENDIT_SECRET_KEY is not a development key, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the xendit binary was not built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("xendit binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// NewClient builds a library client against the configured account.
func (config *TestConfig) NewClient(t *testing.T) xendit.Client {
	t.Helper()

	client, err := xenditclient.New(context.Background(), &xendit.Config{
		APIEndpoint: config.API,
		SecretKey:   config.SecretKey,
		RateLimiter: &xendit.RateLimiterConfig{MaxRequests: 30, Window: time.Minute},
	})
	require.NoError(t, err)

	return client
}

// CommandRunner runs the xendit binary.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a xendit command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a xendit command with stdin input. The secret key is
// passed through the environment, never on the command line.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(), xenditclient.EnvSecretKey+"="+runner.config.SecretKey)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique reference for test resources.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput verifies command output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not JSON: %s", output)
	}
}

//go:build integration

package integration

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/keyline-io/keyline-go/pkg/keyline"
	"github.com/keyline-io/keyline-go/pkg/klclient"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint    string
	AccountID   string
	Token       string
	PolicyID    string
	KeylinePath string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:    os.Getenv("KEYLINE_TEST_ENDPOINT"),
		AccountID:   os.Getenv("KEYLINE_TEST_ACCOUNT"),
		Token:       os.Getenv("KEYLINE_TEST_TOKEN"),
		PolicyID:    os.Getenv("KEYLINE_TEST_POLICY"),
		KeylinePath: getKeylinePath(),
		Verbose:     os.Getenv("KEYLINE_TEST_VERBOSE") == "true",
	}
}

// getKeylinePath determines the path to the keyline binary
func getKeylinePath() string {
	if path := os.Getenv("KEYLINE_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../keyline",
		"./keyline",
		"../keyline",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "keyline" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("KEYLINE_TEST_ENDPOINT not set, skipping integration test")
	}

	if config.AccountID == "" {
		t.Skip("KEYLINE_TEST_ACCOUNT not set, skipping integration test")
	}

	if config.Token == "" {
		t.Skip("KEYLINE_TEST_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the CLI binary is not built
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	config.SkipIfMissingConfig(t)

	if _, err := os.Stat(config.KeylinePath); os.IsNotExist(err) {
		t.Skipf("keyline binary not found at %s, skipping integration test", config.KeylinePath)
	}
}

// SkipIfMissingPolicy skips tests that need a policy to create licenses under
func (config *TestConfig) SkipIfMissingPolicy(t *testing.T) {
	config.SkipIfMissingConfig(t)

	if config.PolicyID == "" {
		t.Skip("KEYLINE_TEST_POLICY not set, skipping license lifecycle test")
	}
}

// NewTestClient creates an API client for the configured account
func (config *TestConfig) NewTestClient(t *testing.T) keyline.Client {
	client, err := klclient.NewWithToken(context.Background(),
		config.Endpoint, config.AccountID, config.Token)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return client
}

// CommandRunner provides utilities for running keyline commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// globalArgs builds the credential flags for a command invocation.
// Credentials travel as flags so tests never touch the user's config file.
func (runner *CommandRunner) globalArgs() []string {
	return []string{
		"--endpoint", runner.config.Endpoint,
		"--account", runner.config.AccountID,
		"--token", runner.config.Token,
	}
}

// Run executes a keyline command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append(runner.globalArgs(), args...)
	cmd := exec.Command(runner.config.KeylinePath, full...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.KeylinePath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunWithInput executes a keyline command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	full := append(runner.globalArgs(), args...)
	cmd := exec.Command(runner.config.KeylinePath, full...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running with input: %s %s", runner.config.KeylinePath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// CleanupResource attempts to delete a test resource
func (runner *CommandRunner) CleanupResource(resourceType, id string) {
	var args []string
	switch resourceType {
	case "license":
		args = []string{"licenses", "delete", id, "--force"}
	case "machine":
		args = []string{"machines", "deactivate", id}
	case "policy":
		args = []string{"policies", "delete", id}
	case "product":
		args = []string{"products", "delete", id}
	case "webhook":
		args = []string{"webhooks", "delete", id}
	case "group":
		args = []string{"groups", "delete", id}
	case "entitlement":
		args = []string{"entitlements", "delete", id}
	default:
		runner.t.Logf("Unknown resource type for cleanup: %s", resourceType)
		return
	}

	stdout, stderr, err := runner.Run(args...)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, id, stdout, stderr)
	}
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	// Basic JSON validation
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	// Basic YAML validation
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}
	t.Errorf("Output does not appear to be YAML: %s", output)
}

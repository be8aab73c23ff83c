//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var machineActivatedPattern = regexp.MustCompile(`Machine '([^']+)' activated`)

// findLicenseID locates a license by name via JSON list output
func findLicenseID(t *testing.T, runner *CommandRunner, name string) string {
	stdout, stderr, err := runner.Run("licenses", "list", "--output", "json")
	require.NoError(t, err, "Failed to list licenses: %s", stderr)
	AssertJSONOutput(t, stdout)

	var licenses []struct {
		ID         string `json:"id"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	}

	require.NoError(t, json.Unmarshal([]byte(stdout), &licenses), "Failed to parse license list")

	for _, license := range licenses {
		if license.Attributes.Name == name {
			return license.ID
		}
	}

	t.Fatalf("License %q not found in list output", name)

	return ""
}

// TestLicensingWorkflow_CompleteLifecycle tests a complete licensing journey
// through the CLI
func TestLicensingWorkflow_CompleteLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)
	config.SkipIfMissingPolicy(t)

	runner := NewCommandRunner(config, t)

	// Generate unique test names
	licenseName := GenerateTestName("workflow-license")
	machineFingerprint := GenerateTestName("workflow-fp")

	var licenseID, machineID string

	defer func() {
		// Cleanup
		if machineID != "" {
			runner.CleanupResource("machine", machineID)
		}
		if licenseID != "" {
			runner.CleanupResource("license", licenseID)
		}
	}()

	// 1. Verify connectivity
	stdout, stderr, err := runner.Run("ping")
	require.NoError(t, err, "Failed to ping API: %s", stderr)
	assert.Contains(t, stdout, "OK")

	// 2. Create license
	stdout, stderr, err = runner.Run("licenses", "create",
		"--policy", config.PolicyID,
		"--name", licenseName,
		"--metadata", "origin=integration-workflow")
	require.NoError(t, err, "Failed to create license: %s", stderr)
	assert.Contains(t, stdout, licenseName)
	assert.Contains(t, stdout, "Key:")

	licenseID = findLicenseID(t, runner, licenseName)

	// 3. Verify license with JSON output
	stdout, stderr, err = runner.Run("licenses", "get", licenseID, "--output", "json")
	require.NoError(t, err, "Failed to get license with JSON output: %s", stderr)
	AssertJSONOutput(t, stdout)
	assert.Contains(t, stdout, licenseName)

	// 4. Validate license
	stdout, stderr, err = runner.Run("licenses", "validate", licenseID, "--no-color")
	require.NoError(t, err, "Failed to validate license: %s", stderr)
	assert.Regexp(t, `VALID|INVALID`, stdout)

	// 5. Activate machine against the license
	stdout, stderr, err = runner.Run("machines", "activate",
		"--license", licenseID,
		"--fingerprint", machineFingerprint,
		"--name", GenerateTestName("workflow-machine"),
		"--platform", "linux")
	require.NoError(t, err, "Failed to activate machine: %s", stderr)

	match := machineActivatedPattern.FindStringSubmatch(stdout)
	require.Len(t, match, 2, "Activation output should name the machine: %s", stdout)
	machineID = match[1]

	// 6. Record a heartbeat
	stdout, stderr, err = runner.Run("machines", "ping", machineID)
	require.NoError(t, err, "Failed to ping machine: %s", stderr)
	assert.Contains(t, stdout, "heartbeat recorded")

	// 7. Machine shows up when listing by license
	stdout, stderr, err = runner.Run("machines", "list", "--license", licenseID)
	require.NoError(t, err, "Failed to list machines: %s", stderr)
	assert.Contains(t, stdout, machineID)

	// 8. Update license name
	stdout, stderr, err = runner.Run("licenses", "update", licenseID,
		"--name", licenseName+"-renamed")
	require.NoError(t, err, "Failed to update license: %s", stderr)
	assert.Contains(t, stdout, "updated")

	// 9. Deactivate machine
	stdout, stderr, err = runner.Run("machines", "deactivate", machineID)
	require.NoError(t, err, "Failed to deactivate machine: %s", stderr)
	assert.Contains(t, stdout, "deactivated")
	machineID = ""

	// 10. Delete license
	stdout, stderr, err = runner.Run("licenses", "delete", licenseID, "--force")
	require.NoError(t, err, "Failed to delete license: %s", stderr)
	assert.Contains(t, stdout, "deleted")
	licenseID = ""
}

// TestLicensingWorkflow_OutputFormats tests all output formats work correctly
func TestLicensingWorkflow_OutputFormats(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	formats := []string{"table", "json", "yaml"}

	for _, format := range formats {
		t.Run(fmt.Sprintf("version_%s_format", format), func(t *testing.T) {
			stdout, stderr, err := runner.Run("version", "--output", format)
			require.NoError(t, err, "Failed to get version with %s format: %s", format, stderr)

			switch format {
			case "json":
				AssertJSONOutput(t, stdout)
			case "yaml":
				AssertYAMLOutput(t, stdout)
			case "table":
				assert.Contains(t, stdout, "Property")
				assert.Contains(t, stdout, "Value")
			}
		})

		t.Run(fmt.Sprintf("licenses_list_%s_format", format), func(t *testing.T) {
			stdout, stderr, err := runner.Run("licenses", "list", "--per-page", "5", "--output", format)
			require.NoError(t, err, "Failed to list licenses with %s format: %s", format, stderr)

			switch format {
			case "json":
				AssertJSONOutput(t, stdout)
			case "yaml":
				AssertYAMLOutput(t, stdout)
			}
		})
	}
}

// TestLicensingWorkflow_ErrorScenarios tests error handling in real scenarios
func TestLicensingWorkflow_ErrorScenarios(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	testCases := []struct {
		name        string
		args        []string
		expectError bool
		errorText   string
	}{
		{
			name:        "create license without policy",
			args:        []string{"licenses", "create", "--name", "should-fail"},
			expectError: true,
			errorText:   "policy is required",
		},
		{
			name:        "get non-existent license",
			args:        []string{"licenses", "get", "nonexistent-license-12345"},
			expectError: true,
			errorText:   "failed to get license",
		},
		{
			name:        "activate machine without fingerprint",
			args:        []string{"machines", "activate", "--license", "some-license"},
			expectError: true,
			errorText:   "fingerprint is required",
		},
		{
			name:        "invalid output format",
			args:        []string{"config", "set", "output", "xml"},
			expectError: true,
			errorText:   "invalid output format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, err := runner.Run(tc.args...)
			if tc.expectError {
				assert.Error(t, err, "Expected error for: %s", tc.name)
				if tc.errorText != "" {
					assert.Contains(t, stderr, tc.errorText, "Expected specific error text, got stdout: %s", stdout)
				}
			} else {
				assert.NoError(t, err, "Unexpected error for: %s\nStderr: %s", tc.name, stderr)
			}
		})
	}
}

// TestLicensingWorkflow_PaginationAndFiltering tests list commands with pagination
func TestLicensingWorkflow_PaginationAndFiltering(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	// Test license listing with pagination
	stdout, stderr, err := runner.Run("licenses", "list", "--per-page", "5")
	require.NoError(t, err, "Failed to list licenses with pagination: %s", stderr)

	// Test license listing with status filter
	stdout, stderr, err = runner.Run("licenses", "list", "--status", "active", "--per-page", "10")
	require.NoError(t, err, "Failed to list licenses with filter: %s", stderr)

	// Test machine listing
	stdout, stderr, err = runner.Run("machines", "list", "--per-page", "5")
	require.NoError(t, err, "Failed to list machines with pagination: %s", stderr)

	// Test product listing
	stdout, stderr, err = runner.Run("products", "list")
	require.NoError(t, err, "Failed to list products: %s", stderr)

	// Test webhook event catalog (static, no server interaction beyond auth)
	stdout, stderr, err = runner.Run("webhooks", "events")
	require.NoError(t, err, "Failed to list webhook events: %s", stderr)
	assert.Contains(t, stdout, "license")
}

// TestLicensingWorkflow_AnalyticsDashboard tests the analytics command
func TestLicensingWorkflow_AnalyticsDashboard(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("analytics", "count")
	require.NoError(t, err, "Failed to get analytics counts: %s", stderr)
	assert.Contains(t, stdout, "Metric")
	assert.Contains(t, stdout, "Count")
}

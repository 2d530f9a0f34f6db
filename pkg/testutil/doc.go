// Package testutil provides project fixtures for tests.
//
// Key components:
//   - TestEnvironment: a project directory with its filesystem, either in
//     memory or in an isolated temp directory
//
// Usage guidelines:
//   - Most tests should use EnvMemoryOnly for speed and isolation
//   - Only tests that drive the CLI or shell out need EnvIsolated
//   - All test data should be defined inline, not in external files
package testutil

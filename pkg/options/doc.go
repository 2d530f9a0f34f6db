// Package options resolves the configuration a task runs with. Values are
// layered with koanf, lowest precedence first: embedded defaults, the task's
// own option defaults, the user config file, the project's .projsync.toml,
// PROJSYNC_ environment variables and finally --opt overrides from the
// command line.
package options

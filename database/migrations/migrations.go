// Package migrations registers the automart schema with pkg/migration.
// Each file calls migration.Register from init(), so importing this package
// for side effects (the CLI and the test harness do) is enough to make
// every migration available to the runner.
package migrations

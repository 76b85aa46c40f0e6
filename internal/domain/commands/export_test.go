package commands

// NewCleanup exports newCleanup for testing.
var NewCleanup = newCleanup //nolint:gochecknoglobals // test export

// Cleanup exports cleanup for testing.
type Cleanup = cleanup

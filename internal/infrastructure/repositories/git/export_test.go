package git

// NewRepositoryWithRunner exports newRepository for testing.
var NewRepositoryWithRunner = newRepository //nolint:gochecknoglobals // test export

// ParseGitVersion exports parseGitVersion for testing.
var ParseGitVersion = parseGitVersion //nolint:gochecknoglobals // test export

// Runner exports runner for testing.
type Runner = runner

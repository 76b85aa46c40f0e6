package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Integration strategies for bringing the fork branch into main.
const (
	StrategyRebase = "rebase"
	StrategyMerge  = "merge"
)

// Built-in defaults, overridable by config file, environment, and flags
// (in that order of increasing precedence).
const (
	DefaultOrigin     = "origin"
	DefaultUpstream   = "upstream"
	DefaultMainBranch = "main"
	DefaultForkBranch = "fork"
)

// Environment variable names recognized as overrides, one per setting.
const (
	EnvStrategy   = "STRATEGY"
	EnvPush       = "PUSH"
	EnvOrigin     = "ORIGIN"
	EnvUpstream   = "UPSTREAM"
	EnvMainBranch = "MAIN_BRANCH"
	EnvForkBranch = "FORK_BRANCH"
	EnvDryRun     = "DRY_RUN"
)

// Settings is the resolved, immutable configuration for a single run.
// Built once by NewSettings and never mutated afterwards.
type Settings struct {
	Strategy   string // "rebase" or "merge"
	Push       bool   // push main to the origin remote after integrating
	Origin     string // remote receiving the push
	Upstream   string // remote providing the source-of-truth main branch
	MainBranch string // local branch carrying the customizations
	ForkBranch string // local branch mirroring upstream's main branch
	DryRun     bool   // log git commands instead of executing them
}

// FileSettings is the optional YAML config file shape. Pointer fields
// distinguish "absent" from a zero value so the file only overrides what
// it actually sets.
type FileSettings struct {
	Strategy   *string `yaml:"strategy"`
	Push       *bool   `yaml:"push"`
	Origin     *string `yaml:"origin"`
	Upstream   *string `yaml:"upstream"`
	MainBranch *string `yaml:"main_branch"`
	ForkBranch *string `yaml:"fork_branch"`
	DryRun     *bool   `yaml:"dry_run"`
}

// FlagOverrides carries the command-line flags the user actually set.
// Nil fields were not given on the command line.
type FlagOverrides struct {
	Strategy   *string
	Push       *bool
	Origin     *string
	Upstream   *string
	MainBranch *string
	ForkBranch *string
	DryRun     *bool
}

// NewSettings resolves the configuration for a run: built-in defaults,
// then the config file, then environment variables, then flags. It fails
// with ErrInvalidArgument before any side effect when the result is not
// a valid configuration.
func NewSettings(file *FileSettings, flags FlagOverrides) (*Settings, error) {
	settings := &Settings{
		Strategy:   StrategyRebase,
		Push:       true,
		Origin:     DefaultOrigin,
		Upstream:   DefaultUpstream,
		MainBranch: DefaultMainBranch,
		ForkBranch: DefaultForkBranch,
		DryRun:     false,
	}

	if file != nil {
		applyFile(settings, file)
	}
	applyEnv(settings)
	applyFlags(settings, flags)

	if err := validate(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

func applyFile(settings *Settings, file *FileSettings) {
	if file.Strategy != nil {
		settings.Strategy = *file.Strategy
	}
	if file.Push != nil {
		settings.Push = *file.Push
	}
	if file.Origin != nil {
		settings.Origin = *file.Origin
	}
	if file.Upstream != nil {
		settings.Upstream = *file.Upstream
	}
	if file.MainBranch != nil {
		settings.MainBranch = *file.MainBranch
	}
	if file.ForkBranch != nil {
		settings.ForkBranch = *file.ForkBranch
	}
	if file.DryRun != nil {
		settings.DryRun = *file.DryRun
	}
}

func applyEnv(settings *Settings) {
	if v, ok := os.LookupEnv(EnvStrategy); ok {
		settings.Strategy = v
	}
	if v, ok := lookupEnvBool(EnvPush); ok {
		settings.Push = v
	}
	if v, ok := os.LookupEnv(EnvOrigin); ok {
		settings.Origin = v
	}
	if v, ok := os.LookupEnv(EnvUpstream); ok {
		settings.Upstream = v
	}
	if v, ok := os.LookupEnv(EnvMainBranch); ok {
		settings.MainBranch = v
	}
	if v, ok := os.LookupEnv(EnvForkBranch); ok {
		settings.ForkBranch = v
	}
	if v, ok := lookupEnvBool(EnvDryRun); ok {
		settings.DryRun = v
	}
}

func applyFlags(settings *Settings, flags FlagOverrides) {
	if flags.Strategy != nil {
		settings.Strategy = *flags.Strategy
	}
	if flags.Push != nil {
		settings.Push = *flags.Push
	}
	if flags.Origin != nil {
		settings.Origin = *flags.Origin
	}
	if flags.Upstream != nil {
		settings.Upstream = *flags.Upstream
	}
	if flags.MainBranch != nil {
		settings.MainBranch = *flags.MainBranch
	}
	if flags.ForkBranch != nil {
		settings.ForkBranch = *flags.ForkBranch
	}
	if flags.DryRun != nil {
		settings.DryRun = *flags.DryRun
	}
}

// lookupEnvBool reads a boolean environment variable (1/0, true/false).
// Unparseable values are warned about and ignored, keeping the previous
// layer's value.
func lookupEnvBool(name string) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		logger.Warnf("Ignoring %s=%q: expected a boolean (1/0)", name, raw)
		return false, false
	}
	return value, true
}

func validate(settings *Settings) error {
	if settings.Strategy != StrategyRebase && settings.Strategy != StrategyMerge {
		return fmt.Errorf(
			"%w: unknown strategy %q (expected %q or %q)",
			ErrInvalidArgument, settings.Strategy, StrategyRebase, StrategyMerge,
		)
	}

	names := map[string]string{
		"origin remote":   settings.Origin,
		"upstream remote": settings.Upstream,
		"main branch":     settings.MainBranch,
		"fork branch":     settings.ForkBranch,
	}
	for what, name := range names {
		if name == "" {
			return fmt.Errorf("%w: %s name must not be empty", ErrInvalidArgument, what)
		}
	}

	if settings.MainBranch == settings.ForkBranch {
		return fmt.Errorf(
			"%w: main branch and fork branch must differ (both are %q)",
			ErrInvalidArgument, settings.MainBranch,
		)
	}

	return nil
}

// LoadFileSettings reads and parses a YAML config file.
func LoadFileSettings(path string) (*FileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var file FileSettings
	if unmarshalErr := yaml.Unmarshal(data, &file); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}

	return &file, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{"."}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".forksync.yaml",
		".forksync.yml",
		"forksync.yaml",
		"forksync.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

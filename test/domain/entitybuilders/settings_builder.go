//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/forksync/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	strategy   string
	push       bool
	origin     string
	upstream   string
	mainBranch string
	forkBranch string
	dryRun     bool
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		strategy:    entities.StrategyRebase,
		push:        true,
		origin:      entities.DefaultOrigin,
		upstream:    entities.DefaultUpstream,
		mainBranch:  entities.DefaultMainBranch,
		forkBranch:  entities.DefaultForkBranch,
		dryRun:      false,
	}
}

// WithStrategy sets the integration strategy.
func (b *SettingsBuilder) WithStrategy(strategy string) *SettingsBuilder {
	b.strategy = strategy
	return b
}

// WithPush sets whether main is pushed after integrating.
func (b *SettingsBuilder) WithPush(push bool) *SettingsBuilder {
	b.push = push
	return b
}

// WithOrigin sets the origin remote name.
func (b *SettingsBuilder) WithOrigin(origin string) *SettingsBuilder {
	b.origin = origin
	return b
}

// WithUpstream sets the upstream remote name.
func (b *SettingsBuilder) WithUpstream(upstream string) *SettingsBuilder {
	b.upstream = upstream
	return b
}

// WithMainBranch sets the main branch name.
func (b *SettingsBuilder) WithMainBranch(branch string) *SettingsBuilder {
	b.mainBranch = branch
	return b
}

// WithForkBranch sets the fork branch name.
func (b *SettingsBuilder) WithForkBranch(branch string) *SettingsBuilder {
	b.forkBranch = branch
	return b
}

// WithDryRun sets the dry-run mode.
func (b *SettingsBuilder) WithDryRun(dryRun bool) *SettingsBuilder {
	b.dryRun = dryRun
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		Strategy:   b.strategy,
		Push:       b.push,
		Origin:     b.origin,
		Upstream:   b.upstream,
		MainBranch: b.mainBranch,
		ForkBranch: b.forkBranch,
		DryRun:     b.dryRun,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.strategy = entities.StrategyRebase
	b.push = true
	b.origin = entities.DefaultOrigin
	b.upstream = entities.DefaultUpstream
	b.mainBranch = entities.DefaultMainBranch
	b.forkBranch = entities.DefaultForkBranch
	b.dryRun = false
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		strategy:    b.strategy,
		push:        b.push,
		origin:      b.origin,
		upstream:    b.upstream,
		mainBranch:  b.mainBranch,
		forkBranch:  b.forkBranch,
		dryRun:      b.dryRun,
	}
}

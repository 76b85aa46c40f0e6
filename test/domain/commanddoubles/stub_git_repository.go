//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"slices"

	"github.com/rios0rios0/forksync/internal/domain/repositories"
)

// GitCall records a single mutating invocation on the spy.
type GitCall struct {
	Op   string
	Args []string
}

// SpyGitRepository implements repositories.GitRepository as a configurable
// spy. It tracks the checked-out branch through switches so tests can
// assert on the end state, and records every mutating call in order.
type SpyGitRepository struct {
	// --- reads ---
	InsideWorkTree bool
	GitVersion     string
	VersionErr     error
	Dirty          bool
	DirtyErr       error
	Remotes        []string
	Branch         string   // currently checked-out branch
	Branches       []string // existing local branches
	Conflicted     bool

	// --- injected failures ---
	FetchErr  map[string]error // keyed by remote
	SwitchErr map[string]error // keyed by branch
	CreateErr error
	ResetErr  error
	RebaseErr error
	MergeErr  error
	PushErr   error

	// --- recorded mutations, in order ---
	Calls []GitCall
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

// NewSpyGitRepository returns a spy representing a clean repository on
// branch "main" with both default remotes configured.
func NewSpyGitRepository() *SpyGitRepository {
	return &SpyGitRepository{
		InsideWorkTree: true,
		GitVersion:     "2.39.2",
		Remotes:        []string{"origin", "upstream"},
		Branch:         "main",
		Branches:       []string{"main"},
	}
}

func (s *SpyGitRepository) record(op string, args ...string) {
	s.Calls = append(s.Calls, GitCall{Op: op, Args: args})
}

// Ops returns the recorded operation names in order.
func (s *SpyGitRepository) Ops() []string {
	ops := make([]string, 0, len(s.Calls))
	for _, call := range s.Calls {
		ops = append(ops, call.Op)
	}
	return ops
}

func (s *SpyGitRepository) IsInsideWorkTree(_ context.Context) bool {
	return s.InsideWorkTree
}

func (s *SpyGitRepository) Version(_ context.Context) (string, error) {
	return s.GitVersion, s.VersionErr
}

func (s *SpyGitRepository) IsDirty(_ context.Context) (bool, error) {
	return s.Dirty, s.DirtyErr
}

func (s *SpyGitRepository) HasRemote(_ context.Context, name string) (bool, error) {
	return slices.Contains(s.Remotes, name), nil
}

func (s *SpyGitRepository) CurrentBranch(_ context.Context) (string, error) {
	return s.Branch, nil
}

func (s *SpyGitRepository) BranchExists(_ context.Context, branch string) (bool, error) {
	return slices.Contains(s.Branches, branch), nil
}

func (s *SpyGitRepository) HasConflict(_ context.Context) bool {
	return s.Conflicted
}

func (s *SpyGitRepository) Fetch(_ context.Context, remote string) error {
	s.record("fetch", remote)
	return s.FetchErr[remote]
}

func (s *SpyGitRepository) SwitchBranch(_ context.Context, branch string) error {
	s.record("switch", branch)
	if err := s.SwitchErr[branch]; err != nil {
		return err
	}
	s.Branch = branch
	return nil
}

func (s *SpyGitRepository) CreateTrackingBranch(_ context.Context, branch, remote, source string) error {
	s.record("create", branch, remote+"/"+source)
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.Branches = append(s.Branches, branch)
	s.Branch = branch
	return nil
}

func (s *SpyGitRepository) ForceResetTo(_ context.Context, remote, branch string) error {
	s.record("reset", remote+"/"+branch)
	return s.ResetErr
}

func (s *SpyGitRepository) Rebase(_ context.Context, branch string) error {
	s.record("rebase", branch)
	return s.RebaseErr
}

func (s *SpyGitRepository) Merge(_ context.Context, branch string) error {
	s.record("merge", branch)
	return s.MergeErr
}

func (s *SpyGitRepository) Push(_ context.Context, remote, branch string) error {
	s.record("push", remote, branch)
	return s.PushErr
}

package versioning

import (
	"context"
	"fmt"
	"strings"

	"github.com/alefragnani/vscode-whats-new/internal/state"
)

// VersionKey returns the store key holding the last seen version of an extension.
func VersionKey(extensionName string) string {
	return extensionName + ".version"
}

// Decision is the outcome of gating a version transition.
type Decision struct {
	// Show is true when the page must be displayed
	Show bool

	// Record is true when RecordedVersion must be persisted
	Record bool

	// RecordedVersion is the version to persist when Record is true
	RecordedVersion string

	// Diff is the classified difference (DiffNone on first run)
	Diff Diff

	// FirstRun is true when no previous version was known
	FirstRun bool

	// Suppressed is true when the environment blocked an otherwise shown page
	Suppressed bool
}

// ShouldShow decides whether moving from previous to current deserves a page.
//
// An empty previous means no version was ever recorded: the current version is
// recorded and nothing is shown. Patch, prerelease-only and identical versions
// are silent and leave the record untouched. Minor and major bumps are
// recorded, and shown unless suppress is set. Suppression never changes what
// gets recorded.
func ShouldShow(current, previous string, suppress bool) (Decision, error) {
	cur, err := ParseVersion(current)
	if err != nil {
		return Decision{}, err
	}

	if strings.TrimSpace(previous) == "" {
		return Decision{
			Record:          true,
			RecordedVersion: current,
			Diff:            DiffNone,
			FirstRun:        true,
		}, nil
	}

	prev, err := ParseVersion(previous)
	if err != nil {
		return Decision{}, fmt.Errorf("stored version: %w", err)
	}

	diff := Classify(cur, prev)
	if !diff.Notable() {
		return Decision{Diff: diff}, nil
	}

	return Decision{
		Show:            !suppress,
		Record:          true,
		RecordedVersion: current,
		Diff:            diff,
		Suppressed:      suppress,
	}, nil
}

// Gate applies ShouldShow against the last seen version kept in a store.
type Gate struct {
	store state.Store
}

// NewGate creates a new Gate backed by store
func NewGate(store state.Store) *Gate {
	return &Gate{store: store}
}

// Evaluate reads the version stored under key, decides, and persists the
// current version when the decision asks for it. The write happens before the
// decision is returned, whether or not display is suppressed.
func (g *Gate) Evaluate(ctx context.Context, key, current string, suppress bool) (Decision, error) {
	previous, _, err := g.store.Get(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to read stored version: %w", err)
	}

	decision, err := ShouldShow(current, previous, suppress)
	if err != nil {
		return Decision{}, err
	}

	if decision.Record {
		if err := g.store.Set(ctx, key, decision.RecordedVersion); err != nil {
			return Decision{}, fmt.Errorf("failed to record version: %w", err)
		}
	}

	return decision, nil
}

package core

import (
	"fmt"
	"strings"

	"github.com/akedrou/textdiff"
)

// Snapshot is a sorted copy of a method table, used to check that unstubbing
// put everything back.
type Snapshot []SnapshotEntry

// Diff renders a unified diff from s to after. It is empty when they match.
func (s Snapshot) Diff(after Snapshot) string {
	return textdiff.Unified("before stub", "after unstub", s.String(), after.String())
}

// Equal reports whether both snapshots hold the same methods with the same visibilities.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

func (s Snapshot) String() string {
	var builder strings.Builder

	for _, entry := range s {
		fmt.Fprintf(&builder, "%s %s %v\n", entry.Visibility, entry.Name, entry.Method)
	}

	return builder.String()
}

// SnapshotEntry is one method in a Snapshot.
type SnapshotEntry struct {
	Name       string
	Method     *Method
	Visibility Visibility
}

// Snapshotter is implemented by stubbees that can expose their own method table.
// Stubba uses it to verify restoration.
type Snapshotter interface {
	MethodSnapshot() Snapshot
}

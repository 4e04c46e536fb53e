package core

import (
	"fmt"
	"slices"
	"strings"
)

// Block is an optional trailing callback passed along with a call.
type Block func(args ...any) []any

// Func is the body of a method.
type Func func(args []any, block Block) []any

// Method is a method body held by a MethodTable.
// Methods are compared by pointer identity, so putting the same *Method back
// into a table restores exactly what was there.
type Method struct {
	label string
	fn    Func
}

// NewMethod wraps fn as a Method. The label only shows up in snapshots and diagnostics.
func NewMethod(label string, fn Func) *Method {
	return &Method{label: label, fn: fn}
}

// Invoke runs the method body.
func (m *Method) Invoke(args []any, block Block) []any {
	return m.fn(args, block)
}

func (m *Method) String() string {
	return fmt.Sprintf("%s@%p", m.label, m)
}

// MethodTable maps method names to their definitions and visibilities.
// It is the indirection layer that makes methods replaceable at runtime.
type MethodTable struct {
	entries map[string]tableEntry
}

// NewMethodTable returns an empty table.
func NewMethodTable() *MethodTable {
	return &MethodTable{entries: make(map[string]tableEntry)}
}

// Define installs method under name. A new name starts Public; redefining an
// existing name keeps its current visibility.
func (t *MethodTable) Define(name string, method *Method) {
	entry := t.entries[name]
	entry.method = method
	t.entries[name] = entry
}

// Has reports whether name is defined, whatever its visibility.
func (t *MethodTable) Has(name string) bool {
	_, ok := t.entries[name]

	return ok
}

// Lookup returns the method and visibility defined under name.
func (t *MethodTable) Lookup(name string) (*Method, Visibility, error) {
	entry, ok := t.entries[name]
	if !ok {
		return nil, Public, fmt.Errorf("%w: %s", ErrMethodNotDefined, name)
	}

	return entry.method, entry.visibility, nil
}

// Remove deletes name from the table.
func (t *MethodTable) Remove(name string) error {
	if _, ok := t.entries[name]; !ok {
		return fmt.Errorf("cannot remove %s: %w", name, ErrMethodNotDefined)
	}

	delete(t.entries, name)

	return nil
}

// SetVisibility changes the visibility of an existing entry.
func (t *MethodTable) SetVisibility(name string, visibility Visibility) error {
	entry, ok := t.entries[name]
	if !ok {
		return fmt.Errorf("cannot make %s %s: %w", name, visibility, ErrMethodNotDefined)
	}

	entry.visibility = visibility
	t.entries[name] = entry

	return nil
}

// Snapshot returns a copy of the table sorted by name.
func (t *MethodTable) Snapshot() Snapshot {
	snapshot := make(Snapshot, 0, len(t.entries))

	for name, entry := range t.entries {
		snapshot = append(snapshot, SnapshotEntry{
			Name:       name,
			Method:     entry.method,
			Visibility: entry.visibility,
		})
	}

	slices.SortFunc(snapshot, func(a, b SnapshotEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return snapshot
}

type tableEntry struct {
	method     *Method
	visibility Visibility
}

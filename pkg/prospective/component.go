// Package prospective generates the prospective provenance graph of a trial:
// the trial's code components chained in source order between a start and an
// end node, as Graphviz DOT text.
package prospective

import (
	"cmp"
	"slices"

	"github.com/matzehuels/prospect/pkg/errors"
)

// Component is one code component of a trial's script.
type Component struct {
	FirstLine int    `toml:"first_line"`
	LastLine  int    `toml:"last_line"`
	Type      string `toml:"type"`
	Name      string `toml:"name"`
	Column    int    `toml:"column"`
}

// FilterKind selects which components a graph covers.
type FilterKind string

const (
	Everything FilterKind = "everything"
	Lines      FilterKind = "lines"    // components within [Start, End]
	Partial    FilterKind = "partial"  // components from Start onwards
	Function   FilterKind = "function" // components within a function definition
)

// Filter restricts the components of a graph.
type Filter struct {
	Kind     FilterKind
	Start    int
	End      int
	Function string
}

// Select returns the components matching f, ordered by line and column.
// Components without a position (first line -1) are dropped.
// It fails when nothing matches.
func Select(components []Component, f Filter) ([]Component, error) {
	all := make([]Component, 0, len(components))
	for _, c := range components {
		if c.FirstLine != -1 {
			all = append(all, c)
		}
	}
	slices.SortStableFunc(all, func(a, b Component) int {
		return cmp.Or(cmp.Compare(a.FirstLine, b.FirstLine), cmp.Compare(a.Column, b.Column))
	})

	var keep func(Component) bool
	switch f.Kind {
	case "", Everything:
		keep = func(Component) bool { return true }
	case Lines:
		keep = func(c Component) bool { return c.FirstLine >= f.Start && c.LastLine <= f.End }
	case Partial:
		keep = func(c Component) bool { return c.FirstLine >= f.Start }
	case Function:
		i := slices.IndexFunc(all, func(c Component) bool { return c.Type == "function_def" && c.Name == f.Function })
		if f.Function == "" || i < 0 {
			return nil, errors.New(errors.ErrCodeNotFound, "function %q does not exist", f.Function)
		}
		def := all[i]
		keep = func(c Component) bool { return c.FirstLine >= def.FirstLine && c.LastLine <= def.LastLine }
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown filter %q", f.Kind)
	}

	out := slices.DeleteFunc(all, func(c Component) bool { return !keep(c) })
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no code components found")
	}
	return out, nil
}

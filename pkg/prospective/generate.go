package prospective

import (
	"fmt"
	"strings"

	"github.com/matzehuels/prospect/pkg/errors"
)

const (
	colorDefault = "#85CBC0"
	colorImport  = "#976BAA"
	maxNameLen   = 50
)

// Generate returns the DOT text of the graph chaining components in the given
// order from a start node to an end node.
func Generate(components []Component) (string, error) {
	if len(components) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no code components found")
	}

	lines := []string{
		"strict digraph {",
		`    node [color=black fillcolor="` + colorDefault + `" shape=box style=filled]`,
		"    nodesep=0.4 size=15",
		"",
		"    start [label=Start]",
	}

	prev := "start"
	for _, c := range components {
		id := NodeID(c)
		lines = append(lines,
			fmt.Sprintf(`    %s [label="%s" fillcolor="%s" shape=%s]`, id, escape(label(c)), fillColor(c.Type), shape(c.Type)),
			fmt.Sprintf("    %s -> %s", prev, id),
		)
		prev = id
	}

	lines = append(lines,
		"",
		"    end [label=End]",
		fmt.Sprintf("    %s -> end", prev),
		"}",
	)
	return strings.Join(lines, "\n"), nil
}

// NodeID returns the DOT identifier of a component's node.
func NodeID(c Component) string {
	t := strings.NewReplacer("-", "_", ".", "_").Replace(c.Type)
	return fmt.Sprintf("node_%d_%s_%d", c.FirstLine, t, c.LastLine)
}

func label(c Component) string {
	name := c.Name
	if name == "" {
		name = c.Type
	} else if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	return fmt.Sprintf("%d: %s", c.FirstLine, name)
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

func escape(s string) string {
	return escaper.Replace(s)
}

func fillColor(typ string) string {
	switch typ {
	case "import", "name":
		return colorImport
	}
	return colorDefault
}

func shape(typ string) string {
	switch typ {
	case "for", "while", "if":
		return "ellipse"
	}
	return "box"
}

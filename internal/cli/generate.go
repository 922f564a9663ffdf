package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/prospective"
	"github.com/matzehuels/prospect/pkg/source"
)

type generateOpts struct {
	output   string
	lines    string
	from     int
	function string
	list     bool
}

// generateCommand creates the generate command, which turns a trial's code
// components into a prospective graph description.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <components.toml>",
		Short: "Generate a prospective graph from code components",
		Long: `Generate a prospective graph from code components.

The input holds one [[component]] table per code component with first_line,
last_line, type, name and column. Components are chained in source order
between a start and an end node. At most one of --lines, --from and
--function restricts the graph.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFilter(opts)
			if err != nil {
				return err
			}
			return runGenerate(args[0], f, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.lines, "lines", "", "only components within START:END")
	cmd.Flags().IntVar(&opts.from, "from", 0, "only components from this line onwards")
	cmd.Flags().StringVar(&opts.function, "function", "", "only components of this function")
	cmd.Flags().BoolVar(&opts.list, "list", false, "print the selected components instead of the graph")
	cmd.MarkFlagsMutuallyExclusive("lines", "from", "function")

	return cmd
}

// parseFilter maps the filter flags onto a component filter.
func parseFilter(opts generateOpts) (prospective.Filter, error) {
	switch {
	case opts.lines != "":
		start, end, ok := strings.Cut(opts.lines, ":")
		s, err1 := strconv.Atoi(strings.TrimSpace(start))
		e, err2 := strconv.Atoi(strings.TrimSpace(end))
		if !ok || err1 != nil || err2 != nil || s > e {
			return prospective.Filter{}, errors.New(errors.ErrCodeInvalidInput, "invalid --lines %q (want START:END)", opts.lines)
		}
		return prospective.Filter{Kind: prospective.Lines, Start: s, End: e}, nil
	case opts.from > 0:
		return prospective.Filter{Kind: prospective.Partial, Start: opts.from}, nil
	case opts.function != "":
		return prospective.Filter{Kind: prospective.Function, Function: opts.function}, nil
	}
	return prospective.Filter{Kind: prospective.Everything}, nil
}

func runGenerate(input string, f prospective.Filter, opts generateOpts) error {
	all, err := prospective.LoadComponents(input)
	if err != nil {
		return err
	}
	components, err := prospective.Select(all, f)
	if err != nil {
		return err
	}

	if opts.list {
		fmt.Println(componentTable(components))
		return nil
	}

	dot, err := prospective.Generate(components)
	if err != nil {
		return err
	}
	if opts.output == "" {
		fmt.Print(dot)
		return nil
	}
	if dir := filepath.Dir(opts.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Generated graph with %d components", len(components))
	printFile(opts.output)
	if filepath.Base(opts.output) == source.FileName {
		trialDir := filepath.Dir(opts.output)
		root := filepath.Dir(filepath.Dir(trialDir))
		printNextStep("View it", fmt.Sprintf("prospect view %s --dir %s", filepath.Base(trialDir), root))
	}
	return nil
}

// componentTable renders components as a bordered table.
func componentTable(components []prospective.Component) string {
	rows := make([][]string, len(components))
	for i, c := range components {
		lines := strconv.Itoa(c.FirstLine)
		if c.LastLine != c.FirstLine {
			lines += "-" + strconv.Itoa(c.LastLine)
		}
		rows[i] = []string{lines, c.Type, c.Name, prospective.NodeID(c)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Lines", "Type", "Name", "Node").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if col == 3 {
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

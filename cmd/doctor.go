package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
	"github.com/urfave/cli/v3"
)

var ErrPrerequisites = errors.New("required prerequisites missing")

// prerequisite is a tool the generated project needs. Any of Commands on
// PATH satisfies it.
type prerequisite struct {
	Label    string
	Commands []string
	Required bool
}

var prerequisites = []prerequisite{
	{Label: "Python 3.12+", Commands: []string{"python3", "python"}, Required: true},
	{Label: "uv", Commands: []string{"uv"}, Required: true},
	{Label: "Docker", Commands: []string{"docker"}, Required: true},
	{Label: "Azure CLI (az)", Commands: []string{"az"}, Required: false},
	{Label: "git", Commands: []string{"git"}, Required: false},
}

type checkResult struct {
	prerequisite
	Path string
}

func (r checkResult) Found() bool {
	return r.Path != ""
}

func checkPrerequisites(lookPath func(string) (string, error)) []checkResult {
	results := make([]checkResult, 0, len(prerequisites))
	for _, p := range prerequisites {
		r := checkResult{prerequisite: p}
		for _, name := range p.Commands {
			if path, err := lookPath(name); err == nil {
				r.Path = path
				break
			}
		}
		results = append(results, r)
	}
	return results
}

func doctorCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:   "doctor",
		Usage:  "Check the tools a scaffolded project needs",
		Action: a.action(a.runDoctor),
	}
}

func (a *app) runDoctor(ctx context.Context, cmd *cli.Command) error {
	st := newOutputStyles(a.stdout)
	results := checkPrerequisites(a.lookPath)

	rows := make([][]string, 0, len(results))
	var missing []string
	for _, r := range results {
		status := "OK"
		required := "Optional"
		if r.Required {
			required = "Required"
		}
		if !r.Found() {
			status = "MISSING"
			if r.Required {
				missing = append(missing, r.Label)
			}
		}
		rows = append(rows, []string{r.Label, status, required, r.Path})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.muted).
		Headers("Check", "Status", "Required", "Path").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			if col != 1 {
				return st.cell
			}
			switch {
			case results[row].Found():
				return st.cell.Inherit(st.ok)
			case results[row].Required:
				return st.cell.Inherit(st.fail)
			default:
				return st.cell.Inherit(st.warn)
			}
		})

	fmt.Fprintln(a.stdout, st.title.Render(version.Tool+" doctor"))
	fmt.Fprintln(a.stdout, t.Render())

	if len(missing) > 0 {
		fmt.Fprintln(a.stdout, st.fail.Render("One or more required checks failed. Fix the issues above before running init."))
		return fmt.Errorf("%w: %s", ErrPrerequisites, strings.Join(missing, ", "))
	}

	fmt.Fprintln(a.stdout, st.ok.Render("All required checks passed."))
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
	"github.com/urfave/cli/v3"
)

var ErrUsage = errors.New("usage")

func templatesCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "Inspect options and manage the template cache",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list selectable options and available template versions",
				Action: a.action(a.runTemplatesList),
			},
			{
				Name:      "cache",
				Usage:     "copy a local template tree into the cache under a version",
				ArgsUsage: "<version> <directory>",
				Action:    a.action(a.runTemplatesCache),
			},
		},
	}
}

func (a *app) runTemplatesList(ctx context.Context, cmd *cli.Command) error {
	st := newOutputStyles(a.stdout)

	var rows [][]string
	for _, c := range adapters.Categories {
		for _, ad := range adapters.All(c) {
			rows = append(rows, []string{c.Label(), ad.Name, ad.Display})
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.muted).
		Headers("Option", "Name", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			if col == 1 {
				return st.cell.Inherit(st.value)
			}
			return st.cell
		})
	fmt.Fprintln(a.stdout, t.Render())

	loc := a.locator(cmd)

	set, err := loc.Locate(ctx, "")
	switch {
	case errors.Is(err, templates.ErrTemplatesNotFound):
		fmt.Fprintln(a.stdout, st.warn.Render("No default templates available."))
	case err != nil:
		return err
	default:
		fmt.Fprintf(a.stdout, "%s %s %s\n", st.label.Render("Default templates:"), st.value.Render(set.Version()), st.muted.Render("("+string(set.Origin())+")"))
		set.Close()
	}

	cached, err := loc.Cache().List()
	if err != nil {
		return fmt.Errorf("listing template cache: %w", err)
	}
	if len(cached) == 0 {
		fmt.Fprintf(a.stdout, "%s %s\n", st.label.Render("Cached versions:"), st.muted.Render("none in "+loc.Cache().Dir()))
		return nil
	}
	fmt.Fprintf(a.stdout, "%s %s\n", st.label.Render("Cached versions:"), strings.Join(cached, ", "))
	return nil
}

func (a *app) runTemplatesCache(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("%w: templates cache <version> <directory>", ErrUsage)
	}
	ver, src := cmd.Args().Get(0), cmd.Args().Get(1)

	loc := a.locator(cmd)

	dest, err := loc.Cache().Write(ver, src)
	if err != nil {
		return err
	}
	a.logger.Debug("cached templates", "version", ver, "path", dest)

	set, err := loc.Locate(ctx, ver)
	if err != nil {
		return err
	}
	defer set.Close()

	if set.Version() != ver {
		a.logger.Warn("cached under a key that differs from the declared version", "key", ver, "declared", set.Version())
	}

	fmt.Fprintf(a.stdout, "Cached templates %s at %s\n", ver, dest)
	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

func upgradeCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:      "upgrade",
		Usage:     "Update a scaffolded project to a newer template version",
		ArgsUsage: "[project-root]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "report changes without writing"},
			&cli.StringFlag{Name: "template-version", Usage: "template version to upgrade to"},
			&cli.BoolFlag{Name: "lenient", Usage: "skip templates that fail to render instead of aborting"},
		},
		Action: a.action(a.runUpgrade),
	}
}

func (a *app) runUpgrade(ctx context.Context, cmd *cli.Command) error {
	root := "."
	if cmd.Args().Present() {
		root = cmd.Args().First()
	}

	result, err := scaffold.Upgrade(ctx, root,
		scaffold.UpgradeOptions{
			DryRun:          cmd.Bool("dry-run"),
			TemplateVersion: cmd.String("template-version"),
		},
		scaffold.WithLogger(a.logger),
		scaffold.WithLenient(cmd.Bool("lenient")),
		scaffold.WithLocator(a.locator(cmd)),
	)
	if err != nil {
		return err
	}

	a.printUpgrade(result)
	return nil
}

func (a *app) printUpgrade(r *scaffold.UpgradeResult) {
	st := newOutputStyles(a.stdout)

	switch r.Outcome {
	case scaffold.UpToDate:
		fmt.Fprintln(a.stdout, st.ok.Render(fmt.Sprintf("Already up to date (version %s).", r.From)))
		return
	case scaffold.DryRun:
		fmt.Fprintln(a.stdout, st.warn.Render(fmt.Sprintf("Dry run: would upgrade from %s to %s", r.From, r.To)))
		fmt.Fprintf(a.stdout, "  Template-owned paths: %d\n", r.OwnedCount)
		for _, p := range r.Updated {
			fmt.Fprintf(a.stdout, "  %s %s\n", st.ok.Render("update"), p)
		}
		for _, p := range r.Skipped {
			fmt.Fprintf(a.stdout, "  %s %s\n", st.warn.Render("skip  "), p)
		}
		for _, p := range r.Orphaned {
			fmt.Fprintf(a.stdout, "  %s %s\n", st.muted.Render("orphan"), p)
		}
		return
	}

	fmt.Fprintln(a.stdout, st.ok.Render(fmt.Sprintf("Upgraded %s to %s", r.From, r.To)))
	fmt.Fprintf(a.stdout, "  Updated: %d files\n", len(r.Updated))
	if len(r.Skipped) > 0 {
		fmt.Fprintln(a.stdout, st.warn.Render(fmt.Sprintf("  Skipped (not template-owned): %d files", len(r.Skipped))))
	}
	for _, p := range r.Orphaned {
		a.logger.Warn("no longer rendered by the templates, left in place", "path", p)
	}
}

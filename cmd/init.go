package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/adapters"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

var optionAliases = map[adapters.Category][]string{
	adapters.Framework:   {"f"},
	adapters.ProjectType: {"p"},
	adapters.Runtime:     {"r"},
}

func initCommand(a *app) *cli.Command {
	flags := make([]cli.Flag, 0, len(adapters.Categories)+4)
	for _, c := range adapters.Categories {
		flags = append(flags, &cli.StringFlag{
			Name:    config.FlagName(c),
			Aliases: optionAliases[c],
			Usage:   fmt.Sprintf("%s (%s)", c.Label(), strings.Join(adapters.Names(c), ", ")),
			Sources: cli.EnvVars(config.EnvVar(c)),
		})
	}
	flags = append(flags,
		&cli.BoolFlag{Name: "overwrite", Usage: "allow a non-empty target directory"},
		&cli.BoolFlag{Name: "non-interactive", Usage: "fail instead of prompting for missing options"},
		&cli.StringFlag{Name: "template-version", Usage: "template version to render (semver or tag)"},
		&cli.BoolFlag{Name: "lenient", Usage: "skip templates that fail to render instead of aborting"},
	)

	return &cli.Command{
		Name:      "init",
		Usage:     "Scaffold a new Azure AI agent project",
		ArgsUsage: "[directory]",
		Flags:     flags,
		Action:    a.action(a.runInit),
	}
}

func (a *app) runInit(ctx context.Context, cmd *cli.Command) error {
	defaults, err := config.LoadDefaults(cmd.String("config"))
	if err != nil {
		return err
	}

	var given config.Selection
	for _, c := range adapters.Categories {
		given = given.With(c, cmd.String(config.FlagName(c)))
	}

	nonInteractive := cmd.Bool("non-interactive") || !a.interactive()

	sel, err := config.Resolve(ctx, given, defaults.Selection(), !nonInteractive, a.prompt)
	if err != nil {
		return err
	}

	target := "."
	if cmd.Args().Present() {
		target = cmd.Args().First()
	}

	templateVersion := cmd.String("template-version")
	if templateVersion == "" {
		templateVersion = defaults.TemplateVersion
	}

	cfg := config.Config{
		Selection:       sel,
		TargetDir:       target,
		TemplateVersion: templateVersion,
		Overwrite:       cmd.Bool("overwrite"),
		NonInteractive:  nonInteractive,
	}
	a.logger.Debug("resolved configuration", "selection", sel.String(), "target", target)

	result, err := scaffold.Init(ctx, cfg,
		scaffold.WithLogger(a.logger),
		scaffold.WithLenient(cmd.Bool("lenient")),
		scaffold.WithLocator(a.locator(cmd)),
	)
	if err != nil {
		return err
	}

	a.printInitSummary(result)
	return nil
}

func (a *app) printInitSummary(r *scaffold.InitResult) {
	st := newOutputStyles(a.stdout)

	fmt.Fprintln(a.stdout, st.ok.Render("Project scaffolded at "+r.Root))
	for _, c := range adapters.Categories {
		name := r.Selection.Get(c)
		display := name
		if ad, err := adapters.Get(c, name); err == nil {
			display = fmt.Sprintf("%s %s", ad.Display, st.muted.Render("("+name+")"))
		}
		fmt.Fprintf(a.stdout, "  %s %s\n", st.label.Render(fmt.Sprintf("%-13s", c.Label()+":")), display)
	}
	fmt.Fprintf(a.stdout, "  %s %s %s\n",
		st.label.Render(fmt.Sprintf("%-13s", "Templates:")),
		st.value.Render(r.TemplateVersion),
		st.muted.Render("("+string(r.TemplateOrigin)+")"))
	fmt.Fprintf(a.stdout, "  Files written: %d\n", r.FileCount())

	if len(r.Conflicts) > 0 {
		a.logger.Debug("overlays replaced earlier files", "count", len(r.Conflicts))
	}
}

package cmd

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/config"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/templates"
	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
	"github.com/urfave/cli/v3"
)

var Version = version.String()

// app carries the process surroundings of a command run so tests can swap
// them out.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger *log.Logger

	lookPath    func(string) (string, error)
	interactive func() bool
	prompt      config.Prompter
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		logger:   newLogger(stderr, false, false),
		lookPath: exec.LookPath,
	}
	a.interactive = func() bool {
		return isTerminal(a.stdin) && isTerminal(a.stdout)
	}
	a.prompt = a.promptSelection
	return a
}

func Execute(ctx context.Context, args []string) error {
	return newApp(os.Stdin, os.Stdout, os.Stderr).command().Run(ctx, args)
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      version.Tool,
		Usage:     "Scaffold Azure AI agent projects",
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug output"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "", Usage: "defaults file (default " + config.DefaultsPath() + ")"},
			&cli.StringFlag{Name: "cache-dir", Value: "", Usage: "template cache directory", Sources: cli.EnvVars(templates.CacheDirEnv)},
		},
		Commands: []*cli.Command{
			initCommand(a),
			upgradeCommand(a),
			doctorCommand(a),
			templatesCommand(a),
			{
				Name:   "version",
				Usage:  "print version",
				Action: a.action(a.runVersion),
			},
		},
	}
}

// action configures logging from the global flags, which may follow the
// subcommand name, before running fn.
func (a *app) action(fn cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a.logger = newLogger(a.stderr, cmd.Bool("verbose"), cmd.Bool("quiet"))
		return fn(ctx, cmd)
	}
}

func (a *app) locator(cmd *cli.Command) *templates.Locator {
	return templates.NewLocator(templates.WithCacheDir(cmd.String("cache-dir")))
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

package cmd

import (
	"context"
	"fmt"

	"github.com/nkamrudeen/azure-agent-starter-pack/pkg/version"
	"github.com/urfave/cli/v3"
)

func (a *app) runVersion(ctx context.Context, cmd *cli.Command) error {
	fmt.Fprintf(a.stdout, "%s version %s\n", version.Tool, Version)
	return nil
}

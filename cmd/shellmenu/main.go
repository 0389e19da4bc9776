package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/senenv/shellmenu/internal/cli"
	"github.com/senenv/shellmenu/pkg/version"
)

func main() {
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(version.String()),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(1)
	}
}

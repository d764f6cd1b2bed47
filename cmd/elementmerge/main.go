// Command elementmerge finds and merges duplicate elements of architecture
// models. See internal/cli for the commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/elementmerge/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the exit code. It is split from
// main so the deferred cancel runs before os.Exit.
func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	cli.ReportError(os.Stderr, err)
	return cli.ExitCode(err)
}

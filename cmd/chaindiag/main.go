// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/chaindiag/cmd/chaindiag/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.RootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("chaindiag: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

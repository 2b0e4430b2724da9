package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ochairo/pyfinder/internal/domain/interfaces/gateways"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(newApp(os.Stdout, os.Stderr))
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err and, for known failure kinds, what to do about it
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if gateways.IsRateLimitExceeded(err) {
		fmt.Fprintln(w, "GitHub kept rejecting requests as rate limited. Wait for the limit to reset,"+
			" or raise --max-rate-limit-retries / --max-rate-limit-wait.")
	}
}

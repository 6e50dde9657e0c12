// chromepdf renders HTML, local files and web pages to PDF through
// Browserless, the chrome-pdf tool or a local headless browser.
//
// Usage:
//
//	chromepdf render [flags] <url|file|->
//	chromepdf screenshot [flags] <url>
//
// Every flag can also be set through a CHROMEPDF_ environment variable,
// for example CHROMEPDF_API_KEY or CHROMEPDF_PRINT_BACKGROUND.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

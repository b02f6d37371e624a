// Command dispatch hosts a dispatch engine: built-in commands plus the
// commands of an optional YAML manifest, run once or from a REPL.
package main

import (
	"context"
	"os"
	"os/signal"

	dispatchio "github.com/dzonerzy/go-dispatch/io"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], dispatchio.New())
	stop()
	os.Exit(code)
}

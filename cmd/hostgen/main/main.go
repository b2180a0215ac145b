package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/hostgen/cmd/hostgen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := hostgen.Execute(ctx, hostgen.NewRootCmd())
	stop()
	os.Exit(code)
}

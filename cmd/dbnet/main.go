// Command dbnet compiles causal model files into dynamic Bayesian networks
// and runs sampling inference over them.
//
//	dbnet run --model outbreak.yaml --engine particle --horizon 10
//	dbnet cpt --model outbreak.yaml --variable 3
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

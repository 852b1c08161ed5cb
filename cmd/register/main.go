// Package main submits one registration and prints the consent URL.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	registercmd "github.com/louisbranch/drivelink/internal/cmd/register"
	"github.com/louisbranch/drivelink/internal/platform/config"
)

func main() {
	log.SetPrefix("[REGISTER] ")
	cfg, err := registercmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		if errors.Is(err, registercmd.ErrUsage) {
			flag.Usage()
			config.ExitCodef(config.ExitUsage, "Error: %v", err)
		}
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := registercmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clambin/vantage/internal/cmd"
	log "github.com/sirupsen/logrus"
)

var version = "change-me"

func main() {
	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer done()

	if err := cmd.Main(ctx, version); err != nil {
		done()
		log.WithError(err).Fatal("vantage failed")
	}
}

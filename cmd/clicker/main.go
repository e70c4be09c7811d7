package main

import (
	"context"

	"github.com/pixil98/go-clicker/cmd/clicker/command"
	log "github.com/pixil98/go-log"
	service "github.com/pixil98/go-service"
)

func main() {
	logger := log.NewLogger()

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		logger.WithError(err).Fatal("building clicker server")
	}

	if err := app.Run(context.Background()); err != nil {
		logger.WithError(err).Fatal("running clicker server")
	}

	logger.Info("clicker server stopped")
}

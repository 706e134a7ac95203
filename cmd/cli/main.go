package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/nostos-app/nostos/internal/buildinfo"
	"github.com/nostos-app/nostos/internal/client/cli"
	"github.com/nostos-app/nostos/internal/client/config"
	"github.com/nostos-app/nostos/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

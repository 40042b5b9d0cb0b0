package main

import (
	"context"
	"log"

	"github.com/bharat3214/Genei/internal/client/cli"
	"github.com/bharat3214/Genei/internal/client/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

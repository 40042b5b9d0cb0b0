package main

import (
	"context"
	"log"

	"github.com/bharat3214/Genei/internal/server"
	"github.com/bharat3214/Genei/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

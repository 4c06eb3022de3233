package main

import (
	"context"
	"log"

	"insightboard/internal/server"
)

func main() {

	ctx := context.Background()
	app, err := server.NewApp()

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}

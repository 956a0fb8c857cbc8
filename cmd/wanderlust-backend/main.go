package main

import (
	"log"

	"github.com/futig/wanderlust-backend/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatalf("failed to build wanderlust backend: %v", err)
	}

	if err := app.Run(); err != nil {
		log.Fatalf("wanderlust backend stopped with error: %v", err)
	}
}

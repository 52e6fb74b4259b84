package main

import (
	"log"

	"github.com/litemark/litemark/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ litemark failed to start: %v", err)
	}
}
